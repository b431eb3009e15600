package cmd

import (
	"fmt"

	"git-global/internal/config"
	"git-global/internal/repo"

	"github.com/spf13/cobra"
)

var scanDryRun bool

// scanCmd 实现 scan 子命令：扫描基础目录下的所有 Git 仓库，
// 并用结果整体替换缓存。扫描是权威的，不做增量合并。
// 用法: git-global scan [--dry-run]
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the base directory and rebuild the repository cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		found, err := repo.ScanRepos(cfg.BaseDir, cfg.Ignore)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if scanDryRun {
			fmt.Fprintln(out, "dry run; repositories found:")
			for _, p := range found {
				fmt.Fprintln(out, p)
			}
			return nil
		}

		// 整体替换缓存；保存失败必须让用户知道，旧缓存保持不变
		if err := repo.SaveRepos(found); err != nil {
			return err
		}

		fmt.Fprintf(out, "found %d repos under %s\n", len(found), cfg.BaseDir)
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "Preview repositories without updating the cache")

	rootCmd.AddCommand(scanCmd)
}
