// tsrs 命令行工具：把 JavaScript/TypeScript 源码转译为 Rust
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	diag "github.com/tangzhangming/tsrs/internal/errors"
)

const (
	Version = "0.1.0"
)

// 全局语言参数
var globalLang string

// commandNames 所有子命令，用于未知命令的拼写建议
var commandNames = []string{"parse-ts", "parse-rs", "transpile", "build", "init", "version", "help"}

// app 命令执行环境
type app struct {
	stdout io.Writer
	stderr io.Writer
}

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(os.Args[1:]))
}

// run 执行命令并返回退出码
func (a *app) run(argv []string) int {
	// 预扫描全局参数 --lang 或 -lang
	args := preprocessArgs(argv)

	InitLanguage(globalLang)

	if len(args) < 1 {
		a.printUsage()
		return 0
	}

	command := args[0]
	switch command {
	case "parse-ts":
		return a.cmdParseTS(args[1:])
	case "parse-rs":
		return a.cmdParseRS(args[1:])
	case "transpile":
		return a.cmdTranspile(args[1:])
	case "build":
		return a.cmdBuild(args[1:])
	case "init":
		return a.cmdInit(args[1:])
	case "version", "-v", "--version":
		a.cmdVersion()
		return 0
	case "help", "-h", "--help":
		a.printUsage()
		return 0
	default:
		m := Msg()
		fmt.Fprintf(a.stderr, m.ErrUnknownCmd+"\n", command)
		if similar := diag.FindSimilar(command, commandNames, 3); similar != "" {
			fmt.Fprintf(a.stderr, m.ErrDidYouMean+"\n", similar)
		}
		fmt.Fprintln(a.stderr)
		a.printUsage()
		return 1
	}
}

// preprocessArgs 预处理参数，提取全局 --lang 参数
func preprocessArgs(args []string) []string {
	var result []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--lang" || arg == "-lang" {
			if i+1 < len(args) {
				globalLang = args[i+1]
				i++ // 跳过下一个参数
				continue
			}
		} else if strings.HasPrefix(arg, "--lang=") {
			globalLang = strings.TrimPrefix(arg, "--lang=")
			continue
		} else if strings.HasPrefix(arg, "-lang=") {
			globalLang = strings.TrimPrefix(arg, "-lang=")
			continue
		}
		result = append(result, arg)
	}
	return result
}

func (a *app) printUsage() {
	m := Msg()
	w := a.stdout
	fmt.Fprintf(w, m.VersionTitle+"\n\n", Version)
	fmt.Fprintln(w, m.HelpUsage)
	fmt.Fprintln(w, "  tsrs [--lang en|zh] <command> [options] [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, m.HelpCommands)
	fmt.Fprintf(w, "  parse-ts <file>             %s\n", m.CmdParseTS)
	fmt.Fprintf(w, "  parse-rs <file>             %s\n", m.CmdParseRS)
	fmt.Fprintf(w, "  transpile <file> [output]   %s\n", m.CmdTranspile)
	fmt.Fprintf(w, "  build [dir]                 %s\n", m.CmdBuild)
	fmt.Fprintf(w, "  init [dir]                  %s\n", m.CmdInit)
	fmt.Fprintf(w, "  version                     %s\n", m.CmdVersion)
	fmt.Fprintf(w, "  help                        %s\n", m.CmdHelp)
	fmt.Fprintln(w)
	fmt.Fprintln(w, m.HelpOptions)
	fmt.Fprintf(w, "  --lang <en|zh>              %s\n", m.OptLang)
	fmt.Fprintln(w)
	fmt.Fprintln(w, m.HelpExamples)
	fmt.Fprintln(w, "  tsrs transpile src/main.ts")
	fmt.Fprintln(w, "  tsrs parse-ts -tokens src/main.ts")
	fmt.Fprintln(w, "  tsrs build -j 4")
	fmt.Fprintln(w, "  tsrs --lang zh help")
}

// cmdVersion 显示版本信息
func (a *app) cmdVersion() {
	m := Msg()
	fmt.Fprintf(a.stdout, m.VersionTitle+"\n", Version)
	fmt.Fprintln(a.stdout, m.VersionDesc)
}

// newLogger 详细模式输出开发格式日志到标准错误，否则不输出
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
