// Package cmd 提供 linecount 的命令行入口与子命令编排。
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本；
// ctx 被取消后统计会在打开下一个文件之前停止。
func Execute(ctx context.Context, version string) error {
	rootCmd := newRootCmd(version)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd 创建根命令并注册全部子命令。
// 根命令本身就是统计命令：linecount [file_or_dir]。
func newRootCmd(version string) *cobra.Command {
	options := &countOptions{}

	rootCmd := &cobra.Command{
		Use:   "linecount [file_or_dir]",
		Short: "统计文件或目录的代码行、注释行与空行",
		Long: "linecount 基于轻量的词法启发式规则统计 SLOC、注释行与空行，\n" +
			"支持 //、# 与 /* */ 注释，支持递归遍历与按名称子串过滤。\n" +
			"file_or_dir 省略或为 * 时统计当前目录。",
		Example: "  linecount main.go\n" +
			"  linecount . -r --excludedirs .git,node_modules\n" +
			"  linecount src -r --includefiles .go,.py --format json --output out/result.json",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, args, options)
		},
	}

	options.bindFlags(rootCmd.Flags())

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newMarkersCmd())

	return rootCmd
}
