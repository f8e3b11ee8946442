// main.go 是 linecount 的程序入口。
// 该文件仅负责注入版本号并执行 Cobra 根命令，
// 让业务逻辑保持在 cmd/internal 目录中，便于测试和扩展。
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"linecount/cmd"
)

// version 默认值为 dev。
// 发布时可以通过 -ldflags "-X main.version=vX.Y.Z" 覆盖该值。
var version = "dev"

func main() {
	// Ctrl+C 后在打开下一个文件之前停止遍历。
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Execute(ctx, version)
	stop()

	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "linecount error: %v\n", err)
		os.Exit(1)
	}
}
