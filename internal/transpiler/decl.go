package transpiler

import (
	"github.com/tangzhangming/tsrs/internal/ast"
	diag "github.com/tangzhangming/tsrs/internal/errors"
	"github.com/tangzhangming/tsrs/internal/rsast"
	"github.com/tangzhangming/tsrs/internal/token"
)

// Decl 转译声明
func (t *Transpiler) Decl(d ast.Declaration) ([]ExprOrStmt, error) {
	vs, err := t.decl(d)
	if err != nil {
		return nil, err
	}
	return vs, nil
}

func (t *Transpiler) decl(d ast.Declaration) ([]ExprOrStmt, *Error) {
	switch d := d.(type) {
	case *ast.VarDecl:
		locals, err := t.varDecl(d)
		if err != nil {
			return nil, err
		}
		vs := make([]ExprOrStmt, len(locals))
		for i, l := range locals {
			vs[i] = FromStmt(l)
		}
		return vs, nil

	case *ast.FuncDecl:
		if d.Declare {
			return nil, newError(diag.T0010, Unsupported, d, "declare function", "")
		}
	case *ast.ClassDecl:
		if d.Declare {
			return nil, newError(diag.T0010, Unsupported, d, "declare class", "")
		}
	}
	// class、function、using、interface、type、enum、namespace
	return nil, unsupported(diag.T0003, d)
}

// varDecl 每个声明符转为一条 let 语句，var / let 可变，const 不可变
func (t *Transpiler) varDecl(d *ast.VarDecl) ([]rsast.Stmt, *Error) {
	if d.Declare {
		return nil, newError(diag.T0010, Unsupported, d, "declare "+d.Kind.Literal, "")
	}

	mutable := d.Kind.Type != token.CONST
	stmts := make([]rsast.Stmt, 0, len(d.Decls))
	for _, declarator := range d.Decls {
		id, ok := declarator.Name.(*ast.Ident)
		if !ok {
			return nil, unsupported(diag.T0008, declarator.Name)
		}
		if declarator.Init == nil {
			return nil, precondition(diag.T0101, id, ast.KindOf(d), id.Name)
		}
		init, err := t.expr(declarator.Init)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, &rsast.LocalStmt{
			Pat:  &rsast.PatIdent{Name: id.Name, Mutable: mutable},
			Init: init,
		})
	}
	return stmts, nil
}
