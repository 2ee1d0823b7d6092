package transpiler

import (
	"errors"
	"fmt"

	"github.com/tangzhangming/tsrs/internal/ast"
	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/i18n"
	"github.com/tangzhangming/tsrs/internal/token"
)

// Category 转译错误类别
type Category int

const (
	// Unsupported 输入合法，但转译器不支持该结构
	Unsupported Category = iota
	// Precondition 结构受支持，但不满足转译的前提（如 else 分支形状）
	Precondition
)

func (c Category) String() string {
	switch c {
	case Unsupported:
		return "unsupported"
	case Precondition:
		return "precondition"
	}
	return "unknown"
}

// 可与 errors.Is 配合使用的类别哨兵
var (
	ErrUnsupported  = errors.New("unsupported construct")
	ErrPrecondition = errors.New("precondition violated")
)

// Error 转译错误
//
// 转译遇到第一个错误立即返回，不产生部分输出。
type Error struct {
	Code      string         // 错误码，T0001 起
	Category  Category       // 类别
	Construct string         // 出错的语法结构或运算符，如 "template literal"
	Pos       token.Position // 起始位置
	End       token.Position // 结束位置，可为零值
	Detail    string         // 附加信息：else 形状、变量名或运算符文本
}

// Message 返回翻译后的错误消息（不含位置）
func (e *Error) Message() string {
	info, ok := diag.GetErrorInfo(e.Code)
	if !ok {
		return i18n.T(i18n.ErrTranspileFailedFor, e.Construct)
	}
	switch e.Code {
	case diag.T0100, diag.T0101:
		return i18n.T(info.MessageID, e.Detail)
	}
	return i18n.T(info.MessageID, e.Construct)
}

func (e *Error) Error() string {
	if e.Pos.Line <= 0 {
		return e.Message()
	}
	if e.Pos.Filename == "" {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message())
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message())
}

// Is 支持 errors.Is(err, ErrUnsupported) 和 errors.Is(err, ErrPrecondition)
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnsupported:
		return e.Category == Unsupported
	case ErrPrecondition:
		return e.Category == Precondition
	}
	return false
}

// CompileError 转换为统一的诊断格式，附带修复建议
func (e *Error) CompileError() *diag.CompileError {
	ce := &diag.CompileError{
		Code:    e.Code,
		Level:   diag.LevelError,
		Message: e.Message(),
		File:    e.Pos.Filename,
		Line:    e.Pos.Line,
		Column:  e.Pos.Column,
	}
	if e.End.Line == e.Pos.Line && e.End.Column > e.Pos.Column {
		ce.EndColumn = e.End.Column
	}
	ce.Hints = diag.GetSuggestions(e.Code, map[string]interface{}{
		"construct": e.Construct,
		"detail":    e.Detail,
	})
	return ce
}

// ============================================================================
// 错误构造
// ============================================================================

func newError(code string, cat Category, node ast.Node, construct, detail string) *Error {
	e := &Error{Code: code, Category: cat, Construct: construct, Detail: detail}
	if node != nil {
		e.Pos = node.Pos()
		e.End = node.End()
	}
	return e
}

// unsupported 以节点种类命名的不支持错误
func unsupported(code string, node ast.Node) *Error {
	return newError(code, Unsupported, node, ast.KindOf(node), "")
}

// unsupportedAs 以给定名称命名的不支持错误
func unsupportedAs(code string, node ast.Node, construct string) *Error {
	return newError(code, Unsupported, node, construct, "")
}

func unsupportedOperator(node ast.Node, kind string, op token.Token) *Error {
	return newError(diag.T0005, Unsupported, node, fmt.Sprintf("%s operator '%s'", kind, op.Literal), op.Literal)
}

func precondition(code string, node ast.Node, construct, detail string) *Error {
	return newError(code, Precondition, node, construct, detail)
}
