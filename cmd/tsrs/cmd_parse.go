package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/tangzhangming/tsrs/internal/ast"
	"github.com/tangzhangming/tsrs/internal/batch"
	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/lexer"
	"github.com/tangzhangming/tsrs/internal/parser"
	"github.com/tangzhangming/tsrs/internal/printer"
	"github.com/tangzhangming/tsrs/internal/rsparse"
	"github.com/tangzhangming/tsrs/internal/token"
)

// newFlagSet 创建子命令参数集，错误输出写到 stderr
func (a *app) newFlagSet(name, usage string) *flag.FlagSet {
	m := Msg()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintln(a.stderr, m.HelpUsage+" tsrs "+name+" "+usage)
		fmt.Fprintln(a.stderr)
		fmt.Fprintln(a.stderr, m.HelpOptions)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags 解析参数，返回非负值时命令应以该退出码结束
func parseFlags(fs *flag.FlagSet, args []string) int {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	return -1
}

// requireInput 检查位置参数中的输入文件
func (a *app) requireInput(fs *flag.FlagSet) bool {
	if fs.NArg() < 1 {
		fs.Usage()
		fmt.Fprintln(a.stderr)
		fmt.Fprintln(a.stderr, Msg().ErrNoInput)
		return false
	}
	return true
}

// cmdParseTS 解析 JS/TS 文件并打印 AST 或词法单元
func (a *app) cmdParseTS(args []string) int {
	m := Msg()
	fs := a.newFlagSet("parse-ts", "[options] <file>")
	showTokens := fs.Bool("tokens", false, m.OptTokens)
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if !a.requireInput(fs) {
		return 1
	}

	filename := fs.Arg(0)
	source, err := readInput(filename)
	if err != nil {
		a.reportErrors(err, false)
		return 1
	}

	if *showTokens {
		return a.runLexer(source, filename)
	}

	p := parser.New(source, filename)
	module := p.Parse()
	if p.HasErrors() {
		a.reportErrors(&batch.ParseError{Filename: filename, Errors: p.Errors()}, false)
		return 1
	}
	fmt.Fprint(a.stdout, ast.Dump(module))
	return 0
}

// runLexer 打印词法单元
func (a *app) runLexer(source, filename string) int {
	l := lexer.New(source, filename)
	tokens := l.ScanTokens()

	fmt.Fprintln(a.stdout, "=== Tokens ===")
	for _, tok := range tokens {
		fmt.Fprintf(a.stdout, "  %s\n", tok)
	}

	if l.HasErrors() {
		fmt.Fprintln(a.stderr, Msg().ErrLexer)
		for _, e := range l.Errors() {
			fmt.Fprintf(a.stderr, "  %s\n", e)
		}
		return 1
	}
	return 0
}

// cmdParseRS 解析 Rust 文件并打印语法树
func (a *app) cmdParseRS(args []string) int {
	fs := a.newFlagSet("parse-rs", "<file>")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if !a.requireInput(fs) {
		return 1
	}

	filename := fs.Arg(0)
	source, err := readInput(filename)
	if err != nil {
		a.reportErrors(err, false)
		return 1
	}

	p := rsparse.New(source, filename)
	file := p.Parse()
	if p.HasErrors() {
		r := diag.NewReporterTo(a.stderr)
		for _, e := range p.Errors() {
			r.ReportError(rustError(e.Pos, e.Message))
		}
		r.Summary()
		return 1
	}
	fmt.Fprint(a.stdout, printer.Debug(file))
	return 0
}

func rustError(pos token.Position, message string) *diag.CompileError {
	return &diag.CompileError{
		Code:    diag.InferErrorCode(message),
		Level:   diag.LevelError,
		Message: message,
		File:    pos.Filename,
		Line:    pos.Line,
		Column:  pos.Column,
	}
}
