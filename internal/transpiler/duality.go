package transpiler

import (
	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/rsast"
)

// ============================================================================
// 表达式 / 语句二元值
// ============================================================================

// ExprOrStmt 语句转译的单个结果：一个表达式或一条语句
//
// 块与 if 转译为表达式，便于作为 else 分支；其余转译为语句。
type ExprOrStmt struct {
	Expr rsast.Expr
	Stmt rsast.Stmt
}

// FromExpr 包装表达式
func FromExpr(x rsast.Expr) ExprOrStmt { return ExprOrStmt{Expr: x} }

// FromStmt 包装语句
func FromStmt(s rsast.Stmt) ExprOrStmt { return ExprOrStmt{Stmt: s} }

// IsExpr 是否为表达式
func (v ExprOrStmt) IsExpr() bool { return v.Expr != nil }

// IntoStmt 转为语句，表达式以分号结尾
func (v ExprOrStmt) IntoStmt() rsast.Stmt {
	if v.Expr != nil {
		return rsast.Semi(v.Expr)
	}
	return v.Stmt
}

// IntoExpr 转为表达式，语句不能强转
func (v ExprOrStmt) IntoExpr() (rsast.Expr, error) {
	if v.Expr != nil {
		return v.Expr, nil
	}
	return nil, precondition(diag.T0103, nil, "statement", "")
}

// intoStmts 把一组结果展平为语句
func intoStmts(vs []ExprOrStmt) []rsast.Stmt {
	out := make([]rsast.Stmt, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.IntoStmt())
	}
	return out
}

// ============================================================================
// 项 / 语句二元值
// ============================================================================

// ItemOrStmt 模块顶层条目的转译结果
type ItemOrStmt struct {
	Item rsast.Item
	Stmt rsast.Stmt
}

// partition 拆分为顶层项和入口函数体语句
//
// 包裹项的语句会被提升为顶层项，两侧各自保持原有顺序。
func partition(vs []ItemOrStmt) (items []rsast.Item, stmts []rsast.Stmt) {
	for _, v := range vs {
		switch {
		case v.Item != nil:
			items = append(items, v.Item)
		case v.Stmt != nil:
			if is, ok := v.Stmt.(*rsast.ItemStmt); ok {
				items = append(items, is.Item)
				continue
			}
			stmts = append(stmts, v.Stmt)
		}
	}
	return items, stmts
}
