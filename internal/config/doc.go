// Package config 提供 git-global 的配置管理功能。
//
// 配置文件存储在 ~/.config/git-global/config.yaml，使用 YAML 格式。
// 支持的配置项包括扫描基础目录、忽略模式、并发数和查询超时。
package config
