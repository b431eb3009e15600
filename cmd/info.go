package cmd

import (
	"errors"
	"fmt"

	"git-global/internal/config"
	"git-global/internal/repo"

	"github.com/spf13/cobra"
)

// infoCmd 实现 info 子命令，显示配置位置、缓存位置和仓库数量。
// 用法: git-global info
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configuration and cache information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		configFile, err := config.File()
		if err != nil {
			return err
		}
		cacheFile, err := repo.CacheFile()
		if err != nil {
			return err
		}

		// 缓存可能还不存在；这里按 0 个仓库显示，而不是报错
		paths, err := repo.LoadRepos()
		if err != nil && !errors.Is(err, repo.ErrNoCache) {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "git-global %s\n", Version)
		fmt.Fprintf(out, "base directory: %s\n", cfg.BaseDir)
		fmt.Fprintf(out, "config file: %s\n", configFile)
		fmt.Fprintf(out, "cache file: %s\n", cacheFile)
		fmt.Fprintf(out, "repositories: %d\n", len(paths))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
