package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"git-global/internal/config"

	"github.com/spf13/cobra"
)

// setCmd 实现 set 子命令，用于查看或修改默认配置。
// 支持两种模式：
// 1. git-global set - 显示当前配置
// 2. git-global set <key> <value> - 设置配置项
var setCmd = newSetCmd()

// newSetCmd 构建 set 命令，便于在测试中复用。
func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set or show configuration",
		Long: `View or modify configuration (basedir, ignore, workers, timeout).

Without arguments, displays the current configuration.
With key/value, sets the specified option.
The ignore value is a comma-separated list of directory patterns.`,
		Example: `  git-global set
  git-global set basedir ~/code
  git-global set ignore node_modules,.cargo,Library
  git-global set workers 8
  git-global set timeout 60`,
		Args: validateSetArgs,
		RunE: runSet,
	}
}

// validateSetArgs 校验 set 参数格式。
func validateSetArgs(cmd *cobra.Command, args []string) error {
	// 无参数：显示配置
	if len(args) == 0 {
		return nil
	}
	// 设置配置需要正好两个参数
	if len(args) != 2 {
		return fmt.Errorf("usage: git-global set [basedir|ignore|workers|timeout] <value>")
	}
	return nil
}

// runSet 执行 set 逻辑（显示或设置配置项）。
func runSet(cmd *cobra.Command, args []string) error {
	// 加载当前配置
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 无参数时显示当前配置
	if len(args) == 0 {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "basedir: %s\n", cfg.BaseDir)
		if len(cfg.Ignore) == 0 {
			fmt.Fprintln(out, "ignore: (none)")
		} else {
			fmt.Fprintf(out, "ignore: %s\n", strings.Join(cfg.Ignore, ", "))
		}
		fmt.Fprintf(out, "workers: %d\n", cfg.Workers)
		fmt.Fprintf(out, "timeout: %ds\n", cfg.Timeout)
		return nil
	}

	key := args[0]
	val := args[1]

	// 根据 key 修改对应配置项
	switch key {
	case "basedir":
		baseDir := strings.TrimSpace(val)
		if baseDir == "" {
			return fmt.Errorf("basedir cannot be empty")
		}
		cfg.BaseDir = baseDir
	case "ignore":
		cfg.Ignore = splitIgnoreList(val)
	case "workers":
		workers, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid workers %q: %w", val, err)
		}
		if workers <= 0 {
			return fmt.Errorf("workers must be > 0, got %d", workers)
		}
		cfg.Workers = workers
	case "timeout":
		timeout, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", val, err)
		}
		if timeout <= 0 {
			return fmt.Errorf("timeout must be > 0, got %d", timeout)
		}
		cfg.Timeout = timeout
	default:
		return fmt.Errorf("unsupported key %q (supported: basedir, ignore, workers, timeout)", key)
	}

	// 保存修改后的配置
	return config.Save(cfg)
}

// splitIgnoreList 将逗号分隔的忽略模式拆分为列表，去空白、去空串。
func splitIgnoreList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// init 注册 set 命令。
func init() {
	rootCmd.AddCommand(setCmd)
}
