package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git-global/internal/config"
)

// cacheFileName 是存储仓库路径缓存的文件名。
const cacheFileName = "repos"

// ErrNoCache 表示还没有任何扫描结果被缓存过。
// 调用方应提示用户先执行 scan，而不是当作致命错误。
var ErrNoCache = errors.New("no repository cache")

// CacheFile 返回仓库路径缓存文件的完整路径。
func CacheFile() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cacheFileName), nil
}

// normalizePath 标准化路径：
// 1. 去除首尾空白
// 2. 展开 ~ 为用户主目录
// 3. 转换为绝对路径
// 4. 清理路径（移除多余的分隔符和 . 或 ..）
func normalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("empty path")
	}

	// 展开 ~ 为用户主目录
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// LoadRepos 从缓存文件加载仓库路径列表。
// 返回的路径列表已去重和标准化，顺序与文件中一致。
// 缓存文件不存在时返回 ErrNoCache。
func LoadRepos() ([]string, error) {
	path, err := CacheFile()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCache
		}
		return nil, err
	}

	lines := strings.Split(string(content), "\n")
	seen := make(map[string]struct{}, len(lines)) // 用于去重
	repos := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		normalized, err := normalizePath(line)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[normalized]; ok {
			continue // 跳过重复项
		}
		seen[normalized] = struct{}{}
		repos = append(repos, normalized)
	}

	return repos, nil
}

// SaveRepos 将扫描结果整体写入缓存文件，完全替换旧内容。
// 写入使用 tmp + rename 的原子策略：要么完整成功，要么保留旧缓存不变。
func SaveRepos(repos []string) error {
	if err := config.EnsureDir(); err != nil {
		return fmt.Errorf("save repo cache: %w", err)
	}

	path, err := CacheFile()
	if err != nil {
		return fmt.Errorf("save repo cache: %w", err)
	}

	data := strings.Join(repos, "\n")
	if len(repos) > 0 {
		data += "\n" // 确保文件以换行符结尾
	}

	// 原子写入：先写临时文件，再 rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(data), 0o600); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save repo cache: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save repo cache: %w", err)
	}
	return nil
}

// isValidRepo 检查路径是否指向有效的 Git 仓库。
// 有效的仓库需要满足：路径存在、是目录、包含 .git 子目录。
func isValidRepo(path string) bool {
	st, err := os.Stat(path)
	if err != nil || !st.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// VerifyRepos 验证缓存中的所有仓库，返回有效和失效的路径列表。
// 缓存允许过期：仓库可能在两次扫描之间被删除或移动。
func VerifyRepos() (valid []string, invalid []string, err error) {
	repos, err := LoadRepos()
	if err != nil {
		return nil, nil, err
	}

	for _, path := range repos {
		if isValidRepo(path) {
			valid = append(valid, path)
		} else {
			invalid = append(invalid, path)
		}
	}
	return valid, invalid, nil
}
