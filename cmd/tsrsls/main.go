// tsrsls tsrs 语言服务器，通过标准输入输出与编辑器通信
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tangzhangming/tsrs/internal/lsp"
)

func main() {
	showVersion := flag.Bool("version", false, "显示版本信息")
	showHelp := flag.Bool("help", false, "显示帮助信息")
	logFile := flag.String("log", "", "日志文件路径（默认不记录日志）")

	flag.Parse()

	if *showVersion {
		fmt.Printf("tsrs Language Server v%s\n", lsp.Version)
		os.Exit(0)
	}

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	logger, err := newFileLogger(*logFile, debugEnabled())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", *logFile, err)
		logger = zap.NewNop()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	server := lsp.NewServer(os.Stdin, os.Stdout, logger)
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("server stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "LSP server error: %v\n", err)
		os.Exit(1)
	}
}

// debugEnabled 环境变量 TSRS_LSP_DEBUG 打开调试日志（记录每条收发的消息）
func debugEnabled() bool {
	switch os.Getenv("TSRS_LSP_DEBUG") {
	case "1", "true", "on":
		return true
	}
	return false
}

// newFileLogger 创建写入 path 的 JSON 日志，path 为空时不记录
//
// 标准输出是协议通道，日志永远不写到 stdout。
func newFileLogger(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

func printUsage() {
	fmt.Println("tsrs Language Server - LSP 服务器")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  tsrsls [options]")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  --version    显示版本信息")
	fmt.Println("  --help       显示帮助信息")
	fmt.Println("  --log <file> 日志文件路径")
	fmt.Println()
	fmt.Println("环境变量:")
	fmt.Println("  TSRS_LSP_DEBUG=1  记录调试日志")
	fmt.Println()
	fmt.Println("LSP 服务器通过标准输入输出 (stdio) 与编辑器通信。")
	fmt.Println("打开的 .ts/.js 文档在每次修改后重新转译，不支持的语法作为诊断发布；")
	fmt.Println("自定义请求 tsrs/preview 返回生成的 Rust 代码。")
}
