package cmd

import (
	"fmt"

	"git-global/internal/repo"

	"github.com/spf13/cobra"
)

// listVerify 标志控制是否验证缓存路径的有效性。
var listVerify bool

// listCmd 实现 list 子命令，用于列出缓存中的所有仓库。
// 用法: git-global list [--verify]
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached repositories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runCtx, err := prepareRun()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		// 不验证时直接输出列表
		if !listVerify {
			for _, r := range runCtx.Repos {
				fmt.Fprintln(out, r.Path)
			}
			return nil
		}

		// 验证模式：检查每个缓存路径是否仍是有效仓库
		_, invalid, err := repo.VerifyRepos()
		if err != nil {
			return err
		}
		invalidSet := make(map[string]struct{}, len(invalid))
		for _, p := range invalid {
			invalidSet[p] = struct{}{}
		}

		// 输出列表，失效仓库标记 (invalid)
		for _, r := range runCtx.Repos {
			if _, ok := invalidSet[r.Path]; ok {
				fmt.Fprintf(out, "%s (invalid)\n", r.Path)
				continue
			}
			fmt.Fprintln(out, r.Path)
		}
		return nil
	},
}

// init 注册 list 命令及其标志。
func init() {
	listCmd.Flags().BoolVar(&listVerify, "verify", false, "Verify cached repositories on disk")

	rootCmd.AddCommand(listCmd)
}
