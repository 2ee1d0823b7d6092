package transpiler

import (
	"math"

	"github.com/tangzhangming/tsrs/internal/ast"
	"github.com/tangzhangming/tsrs/internal/rsast"
	"github.com/tangzhangming/tsrs/internal/token"
)

// ============================================================================
// 计数循环识别
// ============================================================================
//
// for (let i = A; i OP B; i += K) 形式的循环改写为 for i in <区间>：
//
//   i < B,  步长 +K   →  A..B
//   i <= B, 步长 +K   →  A..=B
//   i >= B, 步长 -K   →  (B..=A).rev()
//   i > B,  步长 -K   →  (B+1..A+1).rev()
//
// K 不为 1 时追加 .step_by(K)。比较方向与步长符号不一致、循环体写了计数器、
// 或边界不是安全整数时不识别，回退到 while 形式。
//
// ============================================================================

// maxSafeInt 可被 float64 精确表示的最大整数
const maxSafeInt = 1<<53 - 1

type countingLoop struct {
	name      string
	start     int64 // 初始值 A
	bound     int64 // 比较值 B
	step      int64 // 带符号步长
	cmp       token.TokenType
	inclusive bool
}

// matchCountingLoop 判断 for 语句是否为计数循环
func matchCountingLoop(s *ast.ForStmt) (*countingLoop, bool) {
	loop := &countingLoop{}

	// 初始化: let i = A（var 绑定在循环外仍可见，不识别）
	decl, ok := s.Init.(*ast.VarDecl)
	if !ok || decl.Declare || decl.Kind.Type != token.LET || len(decl.Decls) != 1 {
		return nil, false
	}
	id, ok := decl.Decls[0].Name.(*ast.Ident)
	if !ok {
		return nil, false
	}
	loop.name = id.Name
	if loop.start, ok = intLiteral(decl.Decls[0].Init, true); !ok {
		return nil, false
	}

	// 条件: i OP B
	test, ok := s.Test.(*ast.BinaryExpr)
	if !ok || !isIdent(test.Left, loop.name) {
		return nil, false
	}
	if loop.bound, ok = intLiteral(test.Right, true); !ok {
		return nil, false
	}
	loop.cmp = test.Operator.Type
	switch loop.cmp {
	case token.LT, token.GT:
	case token.LE, token.GE:
		loop.inclusive = true
	default:
		return nil, false
	}

	// 更新: i++、i--、i += K、i -= K
	if loop.step, ok = stepOf(s.Update, loop.name); !ok {
		return nil, false
	}

	ascending := loop.cmp == token.LT || loop.cmp == token.LE
	if ascending != (loop.step > 0) {
		return nil, false
	}
	if assignsTo(s.Body, loop.name) {
		return nil, false
	}
	// 严格递减区间的边界要加一
	if loop.cmp == token.GT && (loop.start >= maxSafeInt || loop.bound >= maxSafeInt) {
		return nil, false
	}
	return loop, true
}

// rangeLoop 生成 for i in <区间> { body }
func (t *Transpiler) rangeLoop(loop *countingLoop, s *ast.ForStmt) (*rsast.ForLoopExpr, *Error) {
	body, err := t.blockOf(s.Body)
	if err != nil {
		return nil, err
	}

	var rng *rsast.RangeExpr
	switch loop.cmp {
	case token.LT, token.LE:
		rng = &rsast.RangeExpr{Start: rsast.Int(loop.start), End: rsast.Int(loop.bound), Closed: loop.inclusive}
	case token.GE:
		rng = &rsast.RangeExpr{Start: rsast.Int(loop.bound), End: rsast.Int(loop.start), Closed: true}
	case token.GT:
		rng = &rsast.RangeExpr{Start: rsast.Int(loop.bound + 1), End: rsast.Int(loop.start + 1)}
	}

	var iter rsast.Expr = rng
	magnitude := loop.step
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if loop.step < 0 || magnitude != 1 {
		iter = &rsast.ParenExpr{X: iter}
	}
	if loop.step < 0 {
		iter = &rsast.MethodCallExpr{Receiver: iter, Method: "rev"}
	}
	if magnitude != 1 {
		iter = &rsast.MethodCallExpr{Receiver: iter, Method: "step_by", Args: []rsast.Expr{rsast.Int(magnitude)}}
	}

	return &rsast.ForLoopExpr{
		Pat:  &rsast.PatIdent{Name: loop.name},
		Iter: iter,
		Body: body,
	}, nil
}

// intLiteral 读取整数字面量，allowNeg 时接受 -N
func intLiteral(e ast.Expression, allowNeg bool) (int64, bool) {
	switch e := e.(type) {
	case *ast.NumberLit:
		v := e.Value
		if v != math.Trunc(v) || v > maxSafeInt {
			return 0, false
		}
		return int64(v), true
	case *ast.UnaryExpr:
		if !allowNeg || e.Operator.Type != token.MINUS {
			return 0, false
		}
		v, ok := intLiteral(e.Operand, false)
		return -v, ok
	}
	return 0, false
}

// stepOf 读取更新表达式的带符号步长
func stepOf(e ast.Expression, name string) (int64, bool) {
	switch e := e.(type) {
	case *ast.UpdateExpr:
		if !isIdent(e.Operand, name) {
			return 0, false
		}
		if e.Operator.Type == token.DECREMENT {
			return -1, true
		}
		return 1, true
	case *ast.AssignExpr:
		if !isIdent(e.Left, name) {
			return 0, false
		}
		k, ok := intLiteral(e.Right, false)
		if !ok || k <= 0 {
			return 0, false
		}
		switch e.Operator.Type {
		case token.PLUS_ASSIGN:
			return k, true
		case token.MINUS_ASSIGN:
			return -k, true
		}
	}
	return 0, false
}

func isIdent(n ast.Node, name string) bool {
	id, ok := n.(*ast.Ident)
	return ok && id.Name == name
}

// assignsTo 检查语句中是否有对 name 的赋值或自增自减
func assignsTo(body ast.Statement, name string) bool {
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		if found {
			return false
		}
		switch n := n.(type) {
		case *ast.AssignExpr:
			found = bindsName(n.Left, name)
		case *ast.UpdateExpr:
			found = isIdent(n.Operand, name)
		}
		return !found
	})
	return found
}

// bindsName 检查赋值目标（可为解构模式）是否写入 name
func bindsName(n ast.Node, name string) bool {
	switch n := n.(type) {
	case *ast.Ident:
		return n.Name == name
	case *ast.ParenExpr:
		return bindsName(n.Expr, name)
	case *ast.ArrayPattern:
		for _, el := range n.Elements {
			if el != nil && bindsName(el, name) {
				return true
			}
		}
	case *ast.ObjectPattern:
		for _, prop := range n.Props {
			if bindsName(prop.Value, name) {
				return true
			}
		}
		if n.Rest != nil {
			return bindsName(n.Rest, name)
		}
	case *ast.RestElement:
		return bindsName(n.Argument, name)
	case *ast.AssignPattern:
		return bindsName(n.Left, name)
	}
	return false
}
