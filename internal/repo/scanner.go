package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanRepos 递归扫描 base 目录，返回其下所有 Git 仓库根目录的绝对路径（已排序）。
//
// 忽略模式的匹配语义：模式匹配目录的精确名称；包含路径分隔符或为绝对路径的
// 模式按路径前缀匹配。命中的目录整棵子树都不会被扫描。
// 已识别为仓库根的目录不再向下扫描（仓库内部 vendored 的依赖检出不算发现目标）。
func ScanRepos(base string, ignore []string) ([]string, error) {
	basePath, err := normalizePath(base)
	if err != nil {
		return nil, err
	}

	st, err := os.Stat(basePath)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", basePath)
	}

	ignore = normalizeIgnore(ignore)

	var repos []string
	seen := make(map[string]struct{})
	scanDir(basePath, basePath, ignore, &repos, seen)

	sort.Strings(repos)
	return repos, nil
}

// normalizeIgnore 清洗忽略模式列表：去空白、去空串。
func normalizeIgnore(ignore []string) []string {
	out := make([]string, 0, len(ignore))
	for _, pattern := range ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		out = append(out, pattern)
	}
	return out
}

// scanDir 深度优先扫描单个目录。
// 不可读的目录直接跳过，单个目录的问题不会中断整体扫描。
func scanDir(basePath, dir string, ignore []string, repos *[]string, seen map[string]struct{}) {
	// 含有 .git 标记的目录即仓库根，记录后不再向下
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			*repos = append(*repos, dir)
		}
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// 权限不足是正常情况，静默跳过；其它读取失败提示后跳过
		if !os.IsPermission(err) {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", dir, err)
		}
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		// 不跟随符号链接，避免循环和重复计数
		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		name := entry.Name()
		if name == ".git" {
			continue
		}

		child := filepath.Join(dir, name)
		if isIgnored(basePath, child, name, ignore) {
			continue
		}

		scanDir(basePath, child, ignore, repos, seen)
	}
}

// isIgnored 判断目录是否命中忽略模式：精确目录名，或基于 base 的路径前缀。
func isIgnored(basePath, path, name string, ignore []string) bool {
	path = filepath.Clean(path)
	sep := string(os.PathSeparator)

	for _, pattern := range ignore {
		if pattern == name {
			return true
		}

		if pattern == "~" || strings.HasPrefix(pattern, "~/") {
			expanded, err := normalizePath(pattern)
			if err == nil {
				pattern = expanded
			}
		}

		var prefix string
		if filepath.IsAbs(pattern) {
			prefix = filepath.Clean(pattern)
		} else {
			prefix = filepath.Join(basePath, filepath.Clean(pattern))
		}

		if path == prefix || strings.HasPrefix(path, prefix+sep) {
			return true
		}
	}

	return false
}
