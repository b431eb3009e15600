package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd 是顶层命令。不带子命令直接运行时执行 status（工具的主要动词）。
var rootCmd = &cobra.Command{
	Use:   "git-global",
	Short: "Git status across all your local repositories",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "get home dir:", err)
		return
	}

	configFile := filepath.Join(home, ".config", "git-global", "config.yaml")
	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return
		}
		if os.IsNotExist(err) {
			return
		}
		fmt.Fprintln(os.Stderr, "read config:", err)
	}
}
