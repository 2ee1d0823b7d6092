// Package printer 把 Rust 语法树输出为 rustfmt 风格的源代码
package printer

import (
	"strconv"
	"strings"

	"github.com/tangzhangming/tsrs/internal/rsast"
)

// Printer Rust 语法树打印器
type Printer struct {
	options *Options
	buf     strings.Builder
	indent  int
	line    int
	col     int
}

// NewPrinter 创建打印器，options 为 nil 时使用默认选项
func NewPrinter(options *Options) *Printer {
	if options == nil {
		options = DefaultOptions()
	}
	return &Printer{
		options: options,
		indent:  0,
		line:    1,
		col:     0,
	}
}

// Print 使用给定选项打印文件
func Print(file *rsast.File, options *Options) string {
	return NewPrinter(options).Print(file)
}

// Print 打印语法树并返回代码
func (p *Printer) Print(file *rsast.File) string {
	p.buf.Reset()
	p.indent, p.line, p.col = 0, 1, 0

	p.printFile(file)

	result := p.buf.String()

	// 移除行尾空格
	if p.options.RemoveTrailingSpace {
		lines := strings.Split(result, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
		result = strings.Join(lines, "\n")
	}

	// 确保文件末尾有换行符
	if p.options.EnsureNewlineAtEOF && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	return result
}

// ============================================================================
// 输出辅助
// ============================================================================

func (p *Printer) write(s string) {
	p.buf.WriteString(s)
	p.col += len(s)
}

func (p *Printer) writeln(s ...string) {
	for _, str := range s {
		p.buf.WriteString(str)
	}
	p.buf.WriteString("\n")
	p.line++
	p.col = 0
}

func (p *Printer) writeIndent() {
	indent := strings.Repeat(p.options.IndentString(), p.indent)
	p.buf.WriteString(indent)
	p.col = len(indent)
}

func (p *Printer) writeOperator(op string) {
	p.write(" ")
	p.write(op)
	p.write(" ")
}

// ============================================================================
// 项
// ============================================================================

func (p *Printer) printFile(file *rsast.File) {
	for _, item := range file.Items {
		p.writeIndent()
		p.printItem(item)
		p.writeln()
	}
}

func (p *Printer) printItem(item rsast.Item) {
	switch it := item.(type) {
	case *rsast.UseItem:
		p.write("use ")
		p.write(strings.Join(it.Path, "::"))
		if it.Glob {
			p.write("::*")
		}
		p.write(";")

	case *rsast.FnItem:
		for _, attr := range it.Attrs {
			p.printAttribute(attr)
			p.writeln()
			p.writeIndent()
		}
		p.write("fn ")
		p.write(it.Name)
		p.write("() ")
		p.printBlock(it.Body)
	}
}

func (p *Printer) printAttribute(attr *rsast.Attribute) {
	p.write("#[")
	p.write(attr.Path)
	if len(attr.Args) > 0 {
		p.write("(")
		p.write(strings.Join(attr.Args, ", "))
		p.write(")")
	}
	p.write("]")
}

// ============================================================================
// 块与语句
// ============================================================================

// printBlock 打印块，空块输出为 {}
func (p *Printer) printBlock(block *rsast.Block) {
	if block == nil || len(block.Stmts) == 0 {
		p.write("{}")
		return
	}
	p.writeln("{")
	p.indent++
	for _, stmt := range block.Stmts {
		p.writeIndent()
		p.printStmt(stmt)
		p.writeln()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) printStmt(stmt rsast.Stmt) {
	switch s := stmt.(type) {
	case *rsast.LocalStmt:
		p.write("let ")
		p.printPat(s.Pat)
		if s.Init != nil {
			p.writeOperator("=")
			p.printExpr(s.Init, rsast.PrecJump)
		}
		p.write(";")

	case *rsast.ExprStmt:
		p.printExpr(s.X, rsast.PrecJump)
		if s.Semi && !dropsSemi(s.X) {
			p.write(";")
		}

	case *rsast.ItemStmt:
		p.printItem(s.Item)
	}
}

// dropsSemi 以循环结尾的表达式语句不输出分号（if 和块保留）
func dropsSemi(x rsast.Expr) bool {
	switch x.(type) {
	case *rsast.WhileExpr, *rsast.LoopExpr, *rsast.ForLoopExpr:
		return true
	}
	return false
}

func (p *Printer) printPat(pat *rsast.PatIdent) {
	if pat.Mutable {
		p.write("mut ")
	}
	p.write(pat.Name)
}

// ============================================================================
// 表达式
// ============================================================================

// printExpr 打印表达式，优先级低于 minPrec 时加括号
func (p *Printer) printExpr(x rsast.Expr, minPrec int) {
	if rsast.Precedence(x) < minPrec {
		p.write("(")
		p.printExpr(x, rsast.PrecJump)
		p.write(")")
		return
	}

	switch e := x.(type) {
	case *rsast.LitExpr:
		p.printLit(e.Lit)

	case *rsast.PathExpr:
		p.write(strings.Join(e.Segments, "::"))

	case *rsast.UnaryExpr:
		p.write(e.Op.String())
		p.printExpr(e.X, rsast.PrecPrefix)

	case *rsast.BinaryExpr:
		prec := e.Op.Precedence()
		leftPrec := prec
		if prec == rsast.PrecCompare {
			// 比较运算不可结合: a == b == c 需要括号
			leftPrec = prec + 1
		}
		p.printExpr(e.Left, leftPrec)
		p.writeOperator(e.Op.String())
		p.printExpr(e.Right, prec+1)

	case *rsast.AssignExpr:
		p.printExpr(e.Left, rsast.PrecAssign+1)
		p.writeOperator("=")
		p.printExpr(e.Right, rsast.PrecAssign)

	case *rsast.AssignOpExpr:
		p.printExpr(e.Left, rsast.PrecAssign+1)
		p.writeOperator(e.Op.AssignText())
		p.printExpr(e.Right, rsast.PrecAssign)

	case *rsast.MethodCallExpr:
		p.printExpr(e.Receiver, rsast.PrecPostfix)
		p.write(".")
		p.write(e.Method)
		p.printArgs(e.Args)

	case *rsast.CallExpr:
		p.printExpr(e.Func, rsast.PrecPostfix)
		p.printArgs(e.Args)

	case *rsast.MacroExpr:
		p.write(e.Name)
		p.write("!")
		p.printArgs(e.Args)

	case *rsast.ParenExpr:
		p.write("(")
		p.printExpr(e.X, rsast.PrecJump)
		p.write(")")

	case *rsast.BlockExpr:
		p.printBlock(e.Block)

	case *rsast.IfExpr:
		p.printIf(e)

	case *rsast.WhileExpr:
		p.write("while ")
		p.printExpr(e.Cond, rsast.PrecJump)
		p.write(" ")
		p.printBlock(e.Body)

	case *rsast.LoopExpr:
		p.write("loop ")
		p.printBlock(e.Body)

	case *rsast.ForLoopExpr:
		p.write("for ")
		p.printPat(e.Pat)
		p.write(" in ")
		p.printExpr(e.Iter, rsast.PrecJump)
		p.write(" ")
		p.printBlock(e.Body)

	case *rsast.RangeExpr:
		if e.Start != nil {
			p.printExpr(e.Start, rsast.PrecRange+1)
		}
		if e.Closed {
			p.write("..=")
		} else {
			p.write("..")
		}
		if e.End != nil {
			p.printExpr(e.End, rsast.PrecRange+1)
		}

	case *rsast.ReturnExpr:
		p.write("return")
		if e.X != nil {
			p.write(" ")
			p.printExpr(e.X, rsast.PrecJump)
		}

	case *rsast.BreakExpr:
		p.write("break")

	case *rsast.ContinueExpr:
		p.write("continue")
	}
}

func (p *Printer) printIf(e *rsast.IfExpr) {
	p.write("if ")
	p.printExpr(e.Cond, rsast.PrecJump)
	p.write(" ")
	p.printBlock(e.Then)
	switch alt := e.Else.(type) {
	case nil:
	case *rsast.IfExpr:
		p.write(" else ")
		p.printIf(alt)
	case *rsast.BlockExpr:
		p.write(" else ")
		p.printBlock(alt.Block)
	default:
		// else 后只能是块或 if
		p.write(" else { ")
		p.printExpr(alt, rsast.PrecJump)
		p.write(" }")
	}
}

func (p *Printer) printArgs(args []rsast.Expr) {
	p.write("(")
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg, rsast.PrecAssign)
	}
	p.write(")")
}

// ============================================================================
// 字面量
// ============================================================================

func (p *Printer) printLit(lit rsast.Lit) {
	switch l := lit.(type) {
	case *rsast.LitStr:
		p.write(Quote(l.Value))
	case *rsast.LitBool:
		p.write(strconv.FormatBool(l.Value))
	case *rsast.LitInt:
		p.write(l.Digits)
	case *rsast.LitFloat:
		p.write(l.Text)
	}
}

// Quote 按 Rust 字符串字面量规则转义
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\u{` + strconv.FormatInt(int64(r), 16) + `}`)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
