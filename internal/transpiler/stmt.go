package transpiler

import (
	"github.com/tangzhangming/tsrs/internal/ast"
	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/rsast"
)

// ============================================================================
// 语句转译
// ============================================================================

// Stmt 转译单条语句，结果为 0..N 个表达式或语句
func (t *Transpiler) Stmt(s ast.Statement) ([]ExprOrStmt, error) {
	vs, err := t.stmt(s)
	if err != nil {
		return nil, err
	}
	return vs, nil
}

func (t *Transpiler) stmt(s ast.Statement) ([]ExprOrStmt, *Error) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		block, err := t.block(s.Body)
		if err != nil {
			return nil, err
		}
		return []ExprOrStmt{FromExpr(&rsast.BlockExpr{Block: block})}, nil

	case *ast.ReturnStmt:
		ret := &rsast.ReturnExpr{}
		if s.Value != nil {
			x, err := t.expr(s.Value)
			if err != nil {
				return nil, err
			}
			ret.X = x
		}
		return []ExprOrStmt{FromStmt(rsast.Semi(ret))}, nil

	case *ast.BreakStmt:
		if s.Label != nil {
			return nil, unsupportedAs(diag.T0002, s, "labeled break")
		}
		return []ExprOrStmt{FromStmt(rsast.Semi(&rsast.BreakExpr{}))}, nil

	case *ast.ContinueStmt:
		if s.Label != nil {
			return nil, unsupportedAs(diag.T0002, s, "labeled continue")
		}
		return []ExprOrStmt{FromStmt(rsast.Semi(&rsast.ContinueExpr{}))}, nil

	case *ast.IfStmt:
		x, err := t.ifExpr(s)
		if err != nil {
			return nil, err
		}
		return []ExprOrStmt{FromExpr(x)}, nil

	case *ast.WhileStmt:
		cond, err := t.expr(s.Test)
		if err != nil {
			return nil, err
		}
		body, err := t.blockOf(s.Body)
		if err != nil {
			return nil, err
		}
		return []ExprOrStmt{FromStmt(rsast.Semi(&rsast.WhileExpr{Cond: cond, Body: body}))}, nil

	case *ast.DoWhileStmt:
		x, err := t.doWhile(s)
		if err != nil {
			return nil, err
		}
		return []ExprOrStmt{FromStmt(rsast.Semi(x))}, nil

	case *ast.ForStmt:
		stmts, err := t.forStmt(s)
		if err != nil {
			return nil, err
		}
		vs := make([]ExprOrStmt, len(stmts))
		for i, st := range stmts {
			vs[i] = FromStmt(st)
		}
		return vs, nil

	case *ast.DeclStmt:
		return t.decl(s.Decl)

	case *ast.ExprStmt:
		x, err := t.expr(s.Expr)
		if err != nil {
			return nil, err
		}
		return []ExprOrStmt{FromStmt(rsast.Semi(x))}, nil
	}

	// for-in、for-of、switch、throw、try、labeled、with、debugger、空语句
	return nil, unsupported(diag.T0002, s)
}

// block 转译语句列表为块，表达式结果以分号结尾
func (t *Transpiler) block(body []ast.Statement) (*rsast.Block, *Error) {
	block := &rsast.Block{Stmts: make([]rsast.Stmt, 0, len(body))}
	for _, s := range body {
		vs, err := t.stmt(s)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, intoStmts(vs)...)
	}
	return block, nil
}

// blockOf 把语句强制转为块，非块语句成为块中唯一的语句
func (t *Transpiler) blockOf(s ast.Statement) (*rsast.Block, *Error) {
	if b, ok := s.(*ast.BlockStmt); ok {
		return t.block(b.Body)
	}
	return t.block([]ast.Statement{s})
}

// stmtExpr 把语句归约为恰好一个表达式
func (t *Transpiler) stmtExpr(s ast.Statement) (rsast.Expr, *Error) {
	vs, err := t.stmt(s)
	if err != nil {
		return nil, err
	}
	switch {
	case len(vs) == 0:
		return nil, precondition(diag.T0100, s, "else branch", "zero expressions")
	case len(vs) == 1 && vs[0].IsExpr():
		return vs[0].Expr, nil
	case vs[0].IsExpr():
		return nil, precondition(diag.T0100, s, "else branch", "multiple expressions")
	}
	return nil, precondition(diag.T0100, s, "else branch", "a statement")
}

func (t *Transpiler) ifExpr(s *ast.IfStmt) (*rsast.IfExpr, *Error) {
	cond, err := t.expr(s.Test)
	if err != nil {
		return nil, err
	}
	then, err := t.blockOf(s.Consequent)
	if err != nil {
		return nil, err
	}
	x := &rsast.IfExpr{Cond: cond, Then: then}
	if s.Alternate != nil {
		alt, err := t.stmtExpr(s.Alternate)
		if err != nil {
			return nil, err
		}
		x.Else = alt
	}
	return x, nil
}

// doWhile do { body } while (test) 转为 loop { body; if !(test) { break; } }
func (t *Transpiler) doWhile(s *ast.DoWhileStmt) (*rsast.LoopExpr, *Error) {
	body, err := t.blockOf(s.Body)
	if err != nil {
		return nil, err
	}
	test, err := t.expr(s.Test)
	if err != nil {
		return nil, err
	}
	guard := &rsast.IfExpr{
		Cond: &rsast.UnaryExpr{Op: rsast.Not, X: &rsast.ParenExpr{X: test}},
		Then: &rsast.Block{Stmts: []rsast.Stmt{rsast.Semi(&rsast.BreakExpr{})}},
	}
	body.Stmts = append(body.Stmts, &rsast.ExprStmt{X: guard})
	return &rsast.LoopExpr{Body: body}, nil
}

// forStmt 计数循环转为 for ... in 区间，其余转为 init; while test { body; update; }
func (t *Transpiler) forStmt(s *ast.ForStmt) ([]rsast.Stmt, *Error) {
	if loop, ok := matchCountingLoop(s); ok {
		x, err := t.rangeLoop(loop, s)
		if err != nil {
			return nil, err
		}
		return []rsast.Stmt{rsast.Semi(x)}, nil
	}

	var stmts []rsast.Stmt
	switch init := s.Init.(type) {
	case nil:
	case *ast.VarDecl:
		locals, err := t.varDecl(init)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, locals...)
	case ast.Expression:
		x, err := t.expr(init)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, rsast.Semi(x))
	default:
		return nil, unsupported(diag.T0002, init)
	}

	var cond rsast.Expr
	if s.Test != nil {
		x, err := t.expr(s.Test)
		if err != nil {
			return nil, err
		}
		cond = x
	}
	var update rsast.Expr
	if s.Update != nil {
		x, err := t.expr(s.Update)
		if err != nil {
			return nil, err
		}
		update = x
	}

	body, err := t.blockOf(s.Body)
	if err != nil {
		return nil, err
	}
	if update != nil {
		body.Stmts = append(body.Stmts, rsast.Semi(update))
	}

	var loop rsast.Expr = &rsast.LoopExpr{Body: body}
	if cond != nil {
		loop = &rsast.WhileExpr{Cond: cond, Body: body}
	}
	return append(stmts, rsast.Semi(loop)), nil
}
