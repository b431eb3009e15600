// Package repo 提供 Git 仓库的发现、缓存和状态聚合功能。
//
// 主要功能：
//   - ScanRepos: 递归扫描基础目录查找 Git 仓库
//   - LoadRepos/SaveRepos: 仓库路径缓存的持久化存储
//   - Repository: 单个仓库的状态查询句柄
//   - AggregateStatus: 并发聚合多个仓库的工作区状态
package repo
