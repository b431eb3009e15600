package cmd

import (
	"fmt"

	"git-global/internal/repo"

	"github.com/spf13/cobra"
)

// statusCmd 实现 status 子命令：并发查询缓存中每个仓库的工作区状态，
// 按缓存顺序输出有变更或查询失败的仓库，最后打印汇总行。
// 用法: git-global status
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show combined status of all cached repositories",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

// init 注册 status 命令。
func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus 是 status 命令的核心逻辑，也是裸 git-global 调用的默认行为。
func runStatus(cmd *cobra.Command, _ []string) error {
	runCtx, err := prepareRun()
	if err != nil {
		return err
	}

	report := repo.AggregateStatus(runCtx.Repos, runCtx.AggregateOptions())

	out := cmd.OutOrStdout()
	for _, entry := range report.Entries {
		// 干净的仓库不占输出
		if entry.Clean() {
			continue
		}

		if entry.Failed() {
			fmt.Fprintf(out, "%s: %v\n", entry.Path, entry.Err)
			continue
		}

		fmt.Fprintf(out, "%s:\n", entry.Path)
		for _, line := range entry.Lines {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}

	clean, dirty, failed := report.Counts()
	fmt.Fprintf(out, "%d repos: %d clean, %d dirty, %d failed\n", len(report.Entries), clean, dirty, failed)
	return nil
}
