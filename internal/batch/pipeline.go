package batch

import (
	"errors"

	"go.uber.org/multierr"

	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/i18n"
	"github.com/tangzhangming/tsrs/internal/parser"
	"github.com/tangzhangming/tsrs/internal/printer"
	"github.com/tangzhangming/tsrs/internal/transpiler"
)

// ParseError 源码存在语法错误
type ParseError struct {
	Filename string
	Errors   []parser.Error
}

func (e *ParseError) Error() string {
	msg := i18n.T(i18n.ErrParseFailedFor, e.Filename, len(e.Errors))
	if len(e.Errors) > 0 {
		msg += ": " + e.Errors[0].Error()
	}
	return msg
}

// CompileErrors 转为诊断列表
func (e *ParseError) CompileErrors() []*diag.CompileError {
	out := make([]*diag.CompileError, 0, len(e.Errors))
	for _, pe := range e.Errors {
		out = append(out, &diag.CompileError{
			Code:    diag.InferErrorCode(pe.Message),
			Level:   diag.LevelError,
			Message: pe.Message,
			File:    pe.Pos.Filename,
			Line:    pe.Pos.Line,
			Column:  pe.Pos.Column,
		})
	}
	return out
}

// TranspileSource 解析、转译并打印一个源文件
//
// 语法错误返回 *ParseError，转译错误返回 *transpiler.Error。
func TranspileSource(source, filename string, topts *transpiler.Options, popts *printer.Options) (string, error) {
	p := parser.New(source, filename)
	module := p.Parse()
	if p.HasErrors() {
		return "", &ParseError{Filename: filename, Errors: p.Errors()}
	}

	file, err := transpiler.New(topts).Module(module)
	if err != nil {
		return "", err
	}
	return printer.Print(file, popts), nil
}

// Diagnostics 把流水线返回的错误（可为 multierr 组合）展开为诊断
func Diagnostics(err error) []*diag.CompileError {
	var out []*diag.CompileError
	for _, e := range multierr.Errors(err) {
		var (
			pe *ParseError
			te *transpiler.Error
			ce *diag.CompileError
		)
		switch {
		case errors.As(e, &pe):
			out = append(out, pe.CompileErrors()...)
		case errors.As(e, &te):
			out = append(out, te.CompileError())
		case errors.As(e, &ce):
			out = append(out, ce)
		default:
			diagErr := &diag.CompileError{Level: diag.LevelError, Message: e.Error()}
			var fe *FileError
			if errors.As(e, &fe) {
				diagErr.File = fe.Path
				diagErr.Message = fe.Err.Error()
			}
			out = append(out, diagErr)
		}
	}
	return out
}
