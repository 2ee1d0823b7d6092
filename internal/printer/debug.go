package printer

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/tsrs/internal/rsast"
)

// Debug 输出语法树的缩进结构，每个节点一行
func Debug(file *rsast.File) string {
	d := &dumper{}
	d.node(file)
	return d.sb.String()
}

type dumper struct {
	sb    strings.Builder
	depth int
}

func (d *dumper) line(format string, args ...interface{}) {
	d.sb.WriteString(strings.Repeat("  ", d.depth))
	fmt.Fprintf(&d.sb, format, args...)
	d.sb.WriteByte('\n')
}

// child 在下一层输出子节点
func (d *dumper) child(nodes ...rsast.Node) {
	d.depth++
	for _, n := range nodes {
		d.node(n)
	}
	d.depth--
}

func (d *dumper) node(n rsast.Node) {
	switch n := n.(type) {
	case *rsast.File:
		d.line("File")
		d.depth++
		for _, item := range n.Items {
			d.node(item)
		}
		d.depth--

	case *rsast.UseItem:
		path := strings.Join(n.Path, "::")
		if n.Glob {
			path += "::*"
		}
		d.line("Use %s", path)

	case *rsast.FnItem:
		d.line("Fn %s", n.Name)
		d.depth++
		for _, attr := range n.Attrs {
			d.line("Attribute %s(%s)", attr.Path, strings.Join(attr.Args, ", "))
		}
		d.depth--
		d.child(n.Body)

	case *rsast.Block:
		d.line("Block")
		d.depth++
		for _, s := range n.Stmts {
			d.node(s)
		}
		d.depth--

	case *rsast.LocalStmt:
		if n.Pat.Mutable {
			d.line("Local mut %s", n.Pat.Name)
		} else {
			d.line("Local %s", n.Pat.Name)
		}
		if n.Init != nil {
			d.child(n.Init)
		}

	case *rsast.ExprStmt:
		if n.Semi {
			d.line("ExprStmt ;")
		} else {
			d.line("ExprStmt")
		}
		d.child(n.X)

	case *rsast.ItemStmt:
		d.line("ItemStmt")
		d.child(n.Item)

	case *rsast.LitExpr:
		switch l := n.Lit.(type) {
		case *rsast.LitStr:
			d.line("Str %s", Quote(l.Value))
		case *rsast.LitBool:
			d.line("Bool %t", l.Value)
		case *rsast.LitInt:
			d.line("Int %s", l.Digits)
		case *rsast.LitFloat:
			d.line("Float %s", l.Text)
		}

	case *rsast.PathExpr:
		d.line("Path %s", strings.Join(n.Segments, "::"))

	case *rsast.UnaryExpr:
		d.line("Unary %s", n.Op)
		d.child(n.X)

	case *rsast.BinaryExpr:
		d.line("Binary %s", n.Op)
		d.child(n.Left, n.Right)

	case *rsast.AssignExpr:
		d.line("Assign =")
		d.child(n.Left, n.Right)

	case *rsast.AssignOpExpr:
		d.line("Assign %s", n.Op.AssignText())
		d.child(n.Left, n.Right)

	case *rsast.MethodCallExpr:
		d.line("MethodCall .%s", n.Method)
		d.child(n.Receiver)
		d.child(exprNodes(n.Args)...)

	case *rsast.CallExpr:
		d.line("Call")
		d.child(n.Func)
		d.child(exprNodes(n.Args)...)

	case *rsast.MacroExpr:
		d.line("Macro %s!", n.Name)
		d.child(exprNodes(n.Args)...)

	case *rsast.ParenExpr:
		d.line("Paren")
		d.child(n.X)

	case *rsast.BlockExpr:
		d.node(n.Block)

	case *rsast.IfExpr:
		d.line("If")
		d.child(n.Cond, n.Then)
		if n.Else != nil {
			d.depth++
			d.line("Else")
			d.child(n.Else)
			d.depth--
		}

	case *rsast.WhileExpr:
		d.line("While")
		d.child(n.Cond, n.Body)

	case *rsast.LoopExpr:
		d.line("Loop")
		d.child(n.Body)

	case *rsast.ForLoopExpr:
		d.line("For %s", n.Pat.Name)
		d.child(n.Iter, n.Body)

	case *rsast.RangeExpr:
		if n.Closed {
			d.line("Range ..=")
		} else {
			d.line("Range ..")
		}
		if n.Start != nil {
			d.child(n.Start)
		}
		if n.End != nil {
			d.child(n.End)
		}

	case *rsast.ReturnExpr:
		d.line("Return")
		if n.X != nil {
			d.child(n.X)
		}

	case *rsast.BreakExpr:
		d.line("Break")

	case *rsast.ContinueExpr:
		d.line("Continue")

	default:
		d.line("%T", n)
	}
}

func exprNodes(xs []rsast.Expr) []rsast.Node {
	nodes := make([]rsast.Node, len(xs))
	for i, x := range xs {
		nodes[i] = x
	}
	return nodes
}
