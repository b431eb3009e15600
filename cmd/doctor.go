package cmd

import (
	"errors"
	"fmt"
	"io"

	"git-global/internal/config"
	"git-global/internal/repo"

	"github.com/spf13/cobra"
)

// doctorCmd 实现 doctor 子命令，一站式诊断环境和配置问题。
// 依次执行 4 项检查：配置合法性、缓存有效性、读权限、性能预警。
// 有错误时返回非零退出码，仅警告时返回 0。
// 用法: git-global doctor
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose environment and configuration issues",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

// init 注册 doctor 命令。
func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor 是 doctor 命令的核心逻辑，按顺序执行 4 项诊断检查：
//  1. 配置合法性（basedir 存在、workers/timeout 取值）
//  2. 缓存有效性（缓存存在、缓存路径仍指向有效仓库）
//  3. 读权限（.git/HEAD 可读）
//  4. 性能预警（仓库数量 >50）
//
// 输出使用 ✅/⚠️/❌ 分类显示，有错误时返回 error（exit 非零）。
func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Running diagnostics...")

	hasError := false

	// 1. 配置合法性检查
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		hasError = true
		fmt.Fprintf(out, "❌ Config: %v\n", cfgErr)
	} else {
		issues := config.ValidateConfig(cfg)
		if len(issues) == 0 {
			fmt.Fprintln(out, "✅ Config: OK")
		} else {
			fmt.Fprintf(out, "⚠️  Config: %d issue(s)\n", len(issues))
			printLines(out, issues)
		}
	}

	// 2. 缓存有效性检查
	var validRepos []string
	validRepos, invalidRepos, verifyErr := repo.VerifyRepos()
	switch {
	case errors.Is(verifyErr, repo.ErrNoCache):
		fmt.Fprintln(out, "⚠️  Cache: no scan has run yet (run \"git-global scan\")")
	case verifyErr != nil:
		hasError = true
		fmt.Fprintf(out, "❌ Cache: %v\n", verifyErr)
	default:
		total := len(validRepos) + len(invalidRepos)
		switch {
		case total == 0:
			fmt.Fprintln(out, "⚠️  Cache: empty (no repositories found by last scan)")
		case len(invalidRepos) == 0:
			fmt.Fprintf(out, "✅ Cache: %d/%d repositories valid\n", len(validRepos), total)
		default:
			fmt.Fprintf(out, "⚠️  Cache: %d/%d valid, %d stale (re-run \"git-global scan\")\n", len(validRepos), total, len(invalidRepos))
			printLines(out, invalidRepos)
		}
	}

	// 3. 读权限检查（需要有效仓库）
	if len(validRepos) == 0 {
		fmt.Fprintln(out, "⚠️  Permissions: skipped (no valid repositories)")
	} else {
		permissionErrors := make([]string, 0)
		for _, repoPath := range validRepos {
			if err := repo.CheckPermissions(repoPath); err != nil {
				permissionErrors = append(permissionErrors, fmt.Sprintf("%s: %v", repoPath, err))
			}
		}
		if len(permissionErrors) == 0 {
			fmt.Fprintln(out, "✅ Permissions: OK")
		} else {
			hasError = true
			fmt.Fprintf(out, "❌ Permissions: %d issue(s)\n", len(permissionErrors))
			printLines(out, permissionErrors)
		}
	}

	// 4. 性能预警（仓库数量）
	performanceWarnings := repo.CheckPerformance(validRepos)
	if len(performanceWarnings) == 0 {
		fmt.Fprintln(out, "✅ Performance: OK")
	} else {
		fmt.Fprintf(out, "⚠️  Performance: %d warning(s)\n", len(performanceWarnings))
		printLines(out, performanceWarnings)
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

// printLines 将字符串列表以缩进列表形式输出，每行前加 "   - " 前缀。
func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(out, "   - %s\n", line)
	}
}
