// git-global 是一个跨仓库的 Git 状态工具：扫描并缓存本机上的所有 Git 仓库，
// 之后可以在任意位置一次性查看它们的合并状态。
package main

import (
	"git-global/cmd"
)

// main 是程序的入口函数，负责启动 CLI 命令执行。
func main() {
	cmd.Execute()
}
