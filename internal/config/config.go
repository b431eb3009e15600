package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// DefaultTimeoutSeconds 是单个仓库状态查询的默认超时（秒）。
const DefaultTimeoutSeconds = 30

type Config struct {
	// BaseDir 是扫描的基础目录，默认为用户主目录。
	BaseDir string
	// Ignore 是扫描时跳过的目录模式列表。
	Ignore []string
	// Workers 是状态聚合的并发查询数。
	Workers int
	// Timeout 是单个仓库查询的超时秒数。
	Timeout int
}

// DefaultWorkers 返回默认并发数（CPU 核心数）。
func DefaultWorkers() int {
	return runtime.NumCPU()
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-global"), nil
}

func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func Load() (Config, error) {
	configFile, err := File()
	if err != nil {
		return Config{}, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetDefault("basedir", home)
	v.SetDefault("ignore", []string{})
	v.SetDefault("workers", DefaultWorkers())
	v.SetDefault("timeout", DefaultTimeoutSeconds)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	}

	return Config{
		BaseDir: v.GetString("basedir"),
		Ignore:  v.GetStringSlice("ignore"),
		Workers: v.GetInt("workers"),
		Timeout: v.GetInt("timeout"),
	}, nil
}

func Save(config Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile, err := File()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("basedir", config.BaseDir)
	v.Set("ignore", config.Ignore)
	v.Set("workers", config.Workers)
	v.Set("timeout", config.Timeout)

	return v.WriteConfigAs(configFile)
}

// expandHome 展开路径开头的 ~ 为用户主目录。
// 配置中的 basedir 允许写成 ~ 或 ~/xxx 的形式。
func expandHome(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if p == "~" {
			return home, nil
		}
		return filepath.Join(home, p[2:]), nil
	}
	return p, nil
}

// ValidateConfig 检查配置合法性，返回问题描述列表（为空表示无问题）。
func ValidateConfig(cfg Config) []string {
	issues := make([]string, 0)

	baseDir := strings.TrimSpace(cfg.BaseDir)
	if baseDir == "" {
		issues = append(issues, "basedir is empty")
	} else if expanded, err := expandHome(baseDir); err != nil {
		issues = append(issues, fmt.Sprintf("basedir %q: cannot resolve home directory", baseDir))
	} else if st, err := os.Stat(expanded); err != nil {
		issues = append(issues, fmt.Sprintf("basedir %q does not exist", baseDir))
	} else if !st.IsDir() {
		issues = append(issues, fmt.Sprintf("basedir %q is not a directory", baseDir))
	}

	if cfg.Workers <= 0 {
		issues = append(issues, fmt.Sprintf("workers must be > 0, got %d", cfg.Workers))
	}
	if cfg.Timeout <= 0 {
		issues = append(issues, fmt.Sprintf("timeout must be > 0, got %d", cfg.Timeout))
	}

	return issues
}
