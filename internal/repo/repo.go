package repo

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
)

// Repository 是对单个仓库路径的轻量句柄。
// 构造时不校验路径有效性：缓存可能过期，校验推迟到查询时进行。
type Repository struct {
	Path string
}

// NewRepository 基于缓存中的路径构造仓库句柄。
func NewRepository(path string) Repository {
	return Repository{Path: path}
}

// StatusEntry 是单个仓库的状态查询结果。
// Err 为 nil 时 Lines 是状态行（空切片表示工作区干净），
// 否则该仓库查询失败（路径失效、元数据损坏等），失败以数据形式携带，
// 不会中断整体聚合。
type StatusEntry struct {
	Path  string
	Lines []string
	Err   error
}

// Clean 报告该仓库查询成功且工作区无任何变更。
func (e StatusEntry) Clean() bool {
	return e.Err == nil && len(e.Lines) == 0
}

// Failed 报告该仓库的状态查询是否失败。
func (e StatusEntry) Failed() bool {
	return e.Err != nil
}

// Status 查询仓库的工作区状态，包含暂存区、工作区和未跟踪三类变更。
// 任何失败（路径不再是有效仓库、打开失败、查询失败）都作为
// 失败标记的 StatusEntry 返回，绝不让单个坏仓库中断整体运行。
func (r Repository) Status() StatusEntry {
	if !isValidRepo(r.Path) {
		return StatusEntry{Path: r.Path, Err: fmt.Errorf("not a git repository: %s", r.Path)}
	}

	gitRepo, err := git.PlainOpen(r.Path)
	if err != nil {
		return StatusEntry{Path: r.Path, Err: fmt.Errorf("open repo %s: %w", r.Path, err)}
	}

	worktree, err := gitRepo.Worktree()
	if err != nil {
		return StatusEntry{Path: r.Path, Err: fmt.Errorf("worktree %s: %w", r.Path, err)}
	}

	status, err := worktree.Status()
	if err != nil {
		return StatusEntry{Path: r.Path, Err: fmt.Errorf("status %s: %w", r.Path, err)}
	}

	return StatusEntry{Path: r.Path, Lines: formatStatus(status)}
}

// formatStatus 将 go-git 的状态映射渲染为 porcelain 风格的 "XY path" 行。
// 未跟踪文件为 "?? path"。行按文件路径排序，保证输出可复现。
func formatStatus(status git.Status) []string {
	paths := make([]string, 0, len(status))
	for path, fileStatus := range status {
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	lines := make([]string, 0, len(paths))
	for _, path := range paths {
		fileStatus := status[path]
		lines = append(lines, fmt.Sprintf("%c%c %s", fileStatus.Staging, fileStatus.Worktree, path))
	}
	return lines
}
