package transpiler

import (
	"github.com/tangzhangming/tsrs/internal/ast"
	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/rsast"
)

// Module 转译整个模块
//
// 输出结构：
//
//	use <shim>::*;
//	<顶层项>
//	#[allow(<lints>)]
//	fn <entry>() { <顶层语句> }
func (t *Transpiler) Module(m *ast.Module) (*rsast.File, error) {
	var all []ItemOrStmt
	for _, item := range m.Body {
		vs, err := t.moduleItem(item)
		if err != nil {
			return nil, err
		}
		all = append(all, vs...)
	}

	items, stmts := partition(all)

	file := &rsast.File{Items: make([]rsast.Item, 0, len(items)+2)}
	file.Items = append(file.Items, t.shimUse())
	file.Items = append(file.Items, items...)
	file.Items = append(file.Items, t.entry(stmts))
	return file, nil
}

func (t *Transpiler) moduleItem(item ast.ModuleItem) ([]ItemOrStmt, *Error) {
	s, ok := item.(*ast.StmtItem)
	if !ok {
		// import、export、declare module
		return nil, unsupported(diag.T0004, item)
	}
	vs, err := t.stmt(s.Stmt)
	if err != nil {
		return nil, err
	}
	out := make([]ItemOrStmt, len(vs))
	for i, v := range vs {
		out[i] = ItemOrStmt{Stmt: v.IntoStmt()}
	}
	return out, nil
}

func (t *Transpiler) shimUse() *rsast.UseItem {
	return &rsast.UseItem{Path: []string{t.opts.ShimCrate}, Glob: true}
}

func (t *Transpiler) entry(stmts []rsast.Stmt) *rsast.FnItem {
	fn := &rsast.FnItem{
		Name: t.opts.EntryName,
		Body: &rsast.Block{Stmts: stmts},
	}
	if len(t.opts.AllowLints) > 0 {
		fn.Attrs = append(fn.Attrs, &rsast.Attribute{Path: "allow", Args: t.opts.AllowLints})
	}
	return fn
}
