package repo

import (
	"fmt"
	"os"
	"path/filepath"
)

// repoCountWarnThreshold 是触发性能预警的仓库数量阈值。
const repoCountWarnThreshold = 50

// CheckPermissions 检查仓库读取权限（通过读取 .git/HEAD）。
func CheckPermissions(repoPath string) error {
	headPath := filepath.Join(repoPath, ".git", "HEAD")
	f, err := os.Open(headPath)
	if err != nil {
		return fmt.Errorf("cannot read .git/HEAD: %w", err)
	}
	_ = f.Close()
	return nil
}

// CheckPerformance 检查性能预警项。
func CheckPerformance(repos []string) []string {
	warnings := make([]string, 0)

	if len(repos) > repoCountWarnThreshold {
		warnings = append(warnings, fmt.Sprintf("large number of repos (%d) may slow down status runs", len(repos)))
	}

	return warnings
}
