// Package cmd 提供 gitloc 的命令行入口与子命令编排。
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"gitloc/internal/classify"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	policy := classify.DefaultPolicy()
	rootCmd := newRootCmd(version, policy)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
// 根命令本身就是计数命令：gitloc [path]。
func newRootCmd(version string, policy *classify.Policy) *cobra.Command {
	rootCmd := newCountCmd(policy)

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newExcludesCmd(policy))

	return rootCmd
}
