package transpiler

import (
	"math"
	"strconv"
	"strings"

	"github.com/tangzhangming/tsrs/internal/ast"
	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/rsast"
	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// 运算符映射
// ============================================================================

var binaryOps = map[token.TokenType]rsast.BinOp{
	token.PLUS:      rsast.Add,
	token.MINUS:     rsast.Sub,
	token.STAR:      rsast.Mul,
	token.SLASH:     rsast.Div,
	token.PERCENT:   rsast.Rem,
	token.EQ:        rsast.Eq,
	token.STRICT_EQ: rsast.Eq,
	token.NE:        rsast.Ne,
	token.STRICT_NE: rsast.Ne,
	token.LT:        rsast.Lt,
	token.LE:        rsast.Le,
	token.GT:        rsast.Gt,
	token.GE:        rsast.Ge,
	token.AND:       rsast.And,
	token.OR:        rsast.Or,
	token.BIT_AND:   rsast.BitAnd,
	token.BIT_OR:    rsast.BitOr,
	token.BIT_XOR:   rsast.BitXor,
	token.SHL:       rsast.Shl,
	token.SHR:       rsast.Shr,
}

var compoundOps = map[token.TokenType]rsast.BinOp{
	token.PLUS_ASSIGN:    rsast.Add,
	token.MINUS_ASSIGN:   rsast.Sub,
	token.STAR_ASSIGN:    rsast.Mul,
	token.SLASH_ASSIGN:   rsast.Div,
	token.PERCENT_ASSIGN: rsast.Rem,
	token.BIT_AND_ASSIGN: rsast.BitAnd,
	token.BIT_OR_ASSIGN:  rsast.BitOr,
	token.BIT_XOR_ASSIGN: rsast.BitXor,
	token.SHL_ASSIGN:     rsast.Shl,
	token.SHR_ASSIGN:     rsast.Shr,
}

// ============================================================================
// 表达式转译
// ============================================================================

// Expr 转译单个表达式
func (t *Transpiler) Expr(e ast.Expression) (rsast.Expr, error) {
	x, err := t.expr(e)
	if err != nil {
		return nil, err
	}
	return x, nil
}

func (t *Transpiler) expr(e ast.Expression) (rsast.Expr, *Error) {
	switch e := e.(type) {
	case *ast.StringLit:
		return rsast.Str(e.Value), nil
	case *ast.BoolLit:
		return rsast.Bool(e.Value), nil
	case *ast.NumberLit:
		return t.number(e)
	case *ast.NullLit, *ast.BigIntLit, *ast.RegExpLit, *ast.TemplateLit:
		return nil, unsupported(diag.T0009, e)

	case *ast.Ident:
		return rsast.Ident(e.Name), nil

	case *ast.UnaryExpr:
		return t.unary(e)
	case *ast.UpdateExpr:
		return t.update(e)
	case *ast.BinaryExpr:
		return t.binary(e)
	case *ast.AssignExpr:
		return t.assign(e)
	case *ast.CallExpr:
		return t.call(e)
	case *ast.ImportExpr:
		return nil, unsupportedAs(diag.T0006, e, "dynamic import")

	case *ast.ParenExpr:
		inner, err := t.expr(e.Expr)
		if err != nil {
			return nil, err
		}
		return &rsast.ParenExpr{X: inner}, nil
	}
	return nil, unsupported(diag.T0001, e)
}

// number 按数字模式生成字面量
//
// 文本为数值的最短十进制表示，不使用指数形式。
func (t *Transpiler) number(e *ast.NumberLit) (rsast.Expr, *Error) {
	v := e.Value
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, unsupportedAs(diag.T0009, e, "non-finite number literal")
	}
	text := strconv.FormatFloat(v, 'f', -1, 64)
	integral := v == math.Trunc(v)
	switch {
	case integral && t.opts.NumberMode == NumberFloat:
		return &rsast.LitExpr{Lit: &rsast.LitFloat{Text: text + ".0"}}, nil
	case integral:
		return &rsast.LitExpr{Lit: &rsast.LitInt{Digits: text}}, nil
	}
	return &rsast.LitExpr{Lit: &rsast.LitFloat{Text: text}}, nil
}

// one 复合赋值 x += 1 中的 1
func (t *Transpiler) one() rsast.Expr {
	if t.opts.NumberMode == NumberFloat {
		return &rsast.LitExpr{Lit: &rsast.LitFloat{Text: "1.0"}}
	}
	return rsast.Int(1)
}

func (t *Transpiler) unary(e *ast.UnaryExpr) (rsast.Expr, *Error) {
	var op rsast.UnOp
	switch e.Operator.Type {
	case token.MINUS:
		op = rsast.Neg
	case token.NOT:
		op = rsast.Not
	default:
		return nil, unsupportedOperator(e, "unary", e.Operator)
	}
	x, err := t.expr(e.Operand)
	if err != nil {
		return nil, err
	}
	return &rsast.UnaryExpr{Op: op, X: x}, nil
}

// update x++ / ++x 都转为 x += 1，表达式值没有前后缀区别
func (t *Transpiler) update(e *ast.UpdateExpr) (rsast.Expr, *Error) {
	target, err := t.target(e.Operand)
	if err != nil {
		return nil, err
	}
	op := rsast.Add
	if e.Operator.Type == token.DECREMENT {
		op = rsast.Sub
	}
	return &rsast.AssignOpExpr{Op: op, Left: target, Right: t.one()}, nil
}

func (t *Transpiler) binary(e *ast.BinaryExpr) (rsast.Expr, *Error) {
	op, ok := binaryOps[e.Operator.Type]
	if !ok {
		return nil, unsupportedOperator(e, "binary", e.Operator)
	}
	left, err := t.expr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := t.expr(e.Right)
	if err != nil {
		return nil, err
	}
	return &rsast.BinaryExpr{Op: op, Left: left, Right: right}, nil
}

func (t *Transpiler) assign(e *ast.AssignExpr) (rsast.Expr, *Error) {
	compound, isCompound := compoundOps[e.Operator.Type]
	if !isCompound && e.Operator.Type != token.ASSIGN {
		return nil, unsupportedOperator(e, "assignment", e.Operator)
	}
	left, err := t.target(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := t.expr(e.Right)
	if err != nil {
		return nil, err
	}
	if isCompound {
		return &rsast.AssignOpExpr{Op: compound, Left: left, Right: right}, nil
	}
	return &rsast.AssignExpr{Left: left, Right: right}, nil
}

// target 赋值目标，只支持标识符
func (t *Transpiler) target(n ast.Node) (rsast.Expr, *Error) {
	if id, ok := n.(*ast.Ident); ok {
		return rsast.Ident(id.Name), nil
	}
	return nil, unsupported(diag.T0007, n)
}

// call 只支持 recv.method(args) 形式
func (t *Transpiler) call(e *ast.CallExpr) (rsast.Expr, *Error) {
	if e.Optional {
		return nil, unsupportedAs(diag.T0006, e, "optional call")
	}

	var member *ast.MemberExpr
	switch callee := e.Callee.(type) {
	case *ast.SuperExpr:
		return nil, unsupportedAs(diag.T0006, e, "super call")
	case *ast.MemberExpr:
		member = callee
	default:
		return nil, unsupportedAs(diag.T0006, e, "bare function call")
	}

	switch {
	case member.Computed:
		return nil, unsupportedAs(diag.T0006, e, "computed member call")
	case member.Optional:
		return nil, unsupportedAs(diag.T0006, e, "optional call")
	}
	if _, ok := member.Object.(*ast.SuperExpr); ok {
		return nil, unsupportedAs(diag.T0006, e, "super call")
	}
	recv, ok := member.Object.(*ast.Ident)
	if !ok {
		return nil, unsupportedAs(diag.T0006, e, "non-identifier receiver")
	}
	method, ok := member.Property.(*ast.Ident)
	if !ok || strings.HasPrefix(method.Name, "#") {
		return nil, unsupportedAs(diag.T0006, e, "private member call")
	}

	args := make([]rsast.Expr, 0, len(e.Args))
	for _, arg := range e.Args {
		if spread, ok := arg.(*ast.SpreadElement); ok {
			return nil, unsupportedAs(diag.T0006, spread, "spread argument")
		}
		x, err := t.expr(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, x)
	}

	return &rsast.MethodCallExpr{
		Receiver: rsast.Ident(recv.Name),
		Method:   method.Name,
		Args:     args,
	}, nil
}
