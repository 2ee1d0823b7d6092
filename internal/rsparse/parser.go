// Package rsparse 解析转译器输出的 Rust 子集
//
// 支持 use、外部属性、无参数的 fn、let 语句、表达式语句，以及 rsast 中的全部
// 表达式。解析结果交给 printer 重新输出时得到相同的文本。
package rsparse

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/tsrs/internal/rsast"
)

// Parser Rust 子集语法分析器
//
// 遇到第一个错误即停止。
type Parser struct {
	source   string
	filename string
	toks     []tok
	current  int
	errors   []Error
}

// bailout 用于在第一个错误处展开调用栈
type bailout struct{}

// New 创建语法分析器
func New(source, filename string) *Parser {
	return &Parser{source: source, filename: filename}
}

// Parse 解析整个文件，出错时返回 nil
func (p *Parser) Parse() (file *rsast.File) {
	toks, err := newLexer(p.source, p.filename).tokenize()
	if err != nil {
		p.errors = append(p.errors, err.(Error))
		return nil
	}
	p.toks = toks

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			file = nil
		}
	}()

	file = &rsast.File{}
	for !p.at(tEOF) {
		file.Items = append(file.Items, p.parseItem())
	}
	return file
}

// Errors 返回解析错误
func (p *Parser) Errors() []Error {
	return p.errors
}

// HasErrors 是否有解析错误
func (p *Parser) HasErrors() bool {
	return len(p.errors) > 0
}

// ParseFile 解析源码，返回文件或第一个错误
func ParseFile(source, filename string) (*rsast.File, error) {
	p := New(source, filename)
	file := p.Parse()
	if p.HasErrors() {
		return nil, p.errors[0]
	}
	return file, nil
}

// ============================================================================
// token 操作
// ============================================================================

func (p *Parser) peek() tok {
	return p.toks[p.current]
}

func (p *Parser) peekAt(n int) tok {
	if p.current+n < len(p.toks) {
		return p.toks[p.current+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k kind) bool {
	return p.peek().kind == k
}

func (p *Parser) check(text string) bool {
	return p.peek().is(text)
}

func (p *Parser) advance() tok {
	t := p.peek()
	if t.kind != tEOF {
		p.current++
	}
	return t
}

func (p *Parser) match(text string) bool {
	if p.check(text) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(text string) tok {
	if !p.check(text) {
		p.fail("expected '%s', found %s", text, describe(p.peek()))
	}
	return p.advance()
}

func (p *Parser) expectIdent() string {
	if !p.at(tIdent) || keywords[p.peek().text] {
		p.fail("expected identifier, found %s", describe(p.peek()))
	}
	return p.advance().text
}

func (p *Parser) fail(format string, args ...interface{}) {
	p.errors = append(p.errors, Error{Pos: p.peek().pos, Message: fmt.Sprintf(format, args...)})
	panic(bailout{})
}

func describe(t tok) string {
	switch t.kind {
	case tEOF:
		return "end of file"
	case tString:
		return "string literal"
	}
	return "'" + t.text + "'"
}

var keywords = map[string]bool{
	"use": true, "fn": true, "let": true, "mut": true, "if": true, "else": true,
	"while": true, "loop": true, "for": true, "in": true, "return": true,
	"break": true, "continue": true, "true": true, "false": true,
}

// ============================================================================
// 项
// ============================================================================

func (p *Parser) parseItem() rsast.Item {
	var attrs []*rsast.Attribute
	for p.check("#") {
		attrs = append(attrs, p.parseAttribute())
	}

	switch {
	case p.check("use"):
		if len(attrs) > 0 {
			p.fail("attributes on use items are not supported")
		}
		return p.parseUse()
	case p.check("fn"):
		fn := p.parseFn()
		fn.Attrs = attrs
		return fn
	}
	p.fail("expected item, found %s", describe(p.peek()))
	return nil
}

// parseAttribute #[path] 或 #[path(args)]
func (p *Parser) parseAttribute() *rsast.Attribute {
	p.expect("#")
	p.expect("[")
	attr := &rsast.Attribute{Path: p.parsePathText()}
	if p.match("(") {
		var arg strings.Builder
		depth := 0
		for {
			t := p.peek()
			switch {
			case t.kind == tEOF:
				p.fail("unterminated attribute")
			case t.is("(") || t.is("["):
				depth++
			case t.is(")") && depth == 0:
				p.advance()
				if s := strings.TrimSpace(arg.String()); s != "" {
					attr.Args = append(attr.Args, s)
				}
				p.expect("]")
				return attr
			case t.is(")") || t.is("]"):
				depth--
			case t.is(",") && depth == 0:
				p.advance()
				attr.Args = append(attr.Args, strings.TrimSpace(arg.String()))
				arg.Reset()
				continue
			}
			arg.WriteString(p.advance().text)
		}
	}
	p.expect("]")
	return attr
}

// parsePathText a::b::c
func (p *Parser) parsePathText() string {
	segs := []string{p.expectIdent()}
	for p.check("::") && p.peekAt(1).kind == tIdent {
		p.advance()
		segs = append(segs, p.advance().text)
	}
	return strings.Join(segs, "::")
}

func (p *Parser) parseUse() *rsast.UseItem {
	p.expect("use")
	use := &rsast.UseItem{Path: []string{p.expectIdent()}}
	for p.match("::") {
		if p.match("*") {
			use.Glob = true
			break
		}
		use.Path = append(use.Path, p.expectIdent())
	}
	p.expect(";")
	return use
}

func (p *Parser) parseFn() *rsast.FnItem {
	p.expect("fn")
	fn := &rsast.FnItem{Name: p.expectIdent()}
	p.expect("(")
	if !p.check(")") {
		p.fail("function parameters are not supported")
	}
	p.expect(")")
	fn.Body = p.parseBlock()
	return fn
}

// ============================================================================
// 块与语句
// ============================================================================

func (p *Parser) parseBlock() *rsast.Block {
	p.expect("{")
	block := &rsast.Block{}
	for !p.check("}") {
		if p.at(tEOF) {
			p.fail("expected '}', found end of file")
		}
		if p.match(";") {
			continue
		}
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	p.expect("}")
	return block
}

func (p *Parser) parseStmt() rsast.Stmt {
	switch {
	case p.check("let"):
		p.advance()
		pat := p.parsePat()
		local := &rsast.LocalStmt{Pat: pat}
		if p.match("=") {
			local.Init = p.parseExpr(rsast.PrecJump)
		}
		p.expect(";")
		return local
	case p.check("fn") || p.check("use") || p.check("#"):
		return &rsast.ItemStmt{Item: p.parseItem()}
	}

	x := p.parseExpr(rsast.PrecJump)
	if p.match(";") {
		return rsast.Semi(x)
	}
	if rsast.BlockLike(x) || p.check("}") {
		return &rsast.ExprStmt{X: x}
	}
	p.fail("expected ';', found %s", describe(p.peek()))
	return nil
}

func (p *Parser) parsePat() *rsast.PatIdent {
	pat := &rsast.PatIdent{}
	if p.match("mut") {
		pat.Mutable = true
	}
	pat.Name = p.expectIdent()
	return pat
}

// ============================================================================
// 表达式
// ============================================================================

// parseExpr 优先级爬升，只接受优先级不低于 minPrec 的运算
func (p *Parser) parseExpr(minPrec int) rsast.Expr {
	// 块状表达式在语句开头不参与二元运算
	if p.startsBlockLike() {
		return p.parsePrimary()
	}

	left := p.parseUnary()
	for {
		t := p.peek()
		if t.kind != tPunct {
			return left
		}

		switch {
		case t.text == "=" && minPrec <= rsast.PrecAssign:
			p.advance()
			left = &rsast.AssignExpr{Left: left, Right: p.parseExpr(rsast.PrecAssign)}
			continue
		case strings.HasSuffix(t.text, "=") && len(t.text) >= 2 && minPrec <= rsast.PrecAssign:
			if op, ok := rsast.LookupBinOp(strings.TrimSuffix(t.text, "=")); ok && op.Compound() {
				p.advance()
				left = &rsast.AssignOpExpr{Op: op, Left: left, Right: p.parseExpr(rsast.PrecAssign)}
				continue
			}
		case (t.text == ".." || t.text == "..=") && minPrec <= rsast.PrecRange:
			p.advance()
			rng := &rsast.RangeExpr{Start: left, Closed: t.text == "..="}
			if p.startsExpr() {
				rng.End = p.parseExpr(rsast.PrecRange + 1)
			}
			left = rng
			continue
		}

		op, ok := rsast.LookupBinOp(t.text)
		if !ok || op.Precedence() < minPrec {
			return left
		}
		p.advance()
		right := p.parseExpr(op.Precedence() + 1)
		left = &rsast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// startsBlockLike 当前 token 是否开始 if / while / loop / for / 块
func (p *Parser) startsBlockLike() bool {
	return p.check("{") || p.check("if") || p.check("while") || p.check("loop") || p.check("for")
}

// startsExpr 当前 token 能否开始一个表达式
func (p *Parser) startsExpr() bool {
	t := p.peek()
	switch t.kind {
	case tIdent, tInt, tFloat, tString:
		return !t.is("else") && !t.is("in")
	case tPunct:
		return t.text == "(" || t.text == "-" || t.text == "!"
	}
	return false
}

func (p *Parser) parseUnary() rsast.Expr {
	switch {
	case p.match("-"):
		return &rsast.UnaryExpr{Op: rsast.Neg, X: p.parseUnary()}
	case p.match("!"):
		return &rsast.UnaryExpr{Op: rsast.Not, X: p.parseUnary()}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(x rsast.Expr) rsast.Expr {
	for {
		switch {
		case p.check("."):
			p.advance()
			method := p.expectIdent()
			x = &rsast.MethodCallExpr{Receiver: x, Method: method, Args: p.parseArgs()}
		case p.check("("):
			x = &rsast.CallExpr{Func: x, Args: p.parseArgs()}
		default:
			return x
		}
	}
}

func (p *Parser) parseArgs() []rsast.Expr {
	p.expect("(")
	var args []rsast.Expr
	for !p.check(")") {
		args = append(args, p.parseExpr(rsast.PrecAssign))
		if !p.match(",") {
			break
		}
	}
	p.expect(")")
	return args
}

func (p *Parser) parsePrimary() rsast.Expr {
	t := p.peek()
	switch t.kind {
	case tInt:
		p.advance()
		return &rsast.LitExpr{Lit: &rsast.LitInt{Digits: t.text}}
	case tFloat:
		p.advance()
		return &rsast.LitExpr{Lit: &rsast.LitFloat{Text: t.text}}
	case tString:
		p.advance()
		return rsast.Str(t.text)
	}

	switch {
	case t.is("true"), t.is("false"):
		p.advance()
		return rsast.Bool(t.text == "true")
	case t.is("("):
		p.advance()
		x := p.parseExpr(rsast.PrecJump)
		p.expect(")")
		return &rsast.ParenExpr{X: x}
	case t.is("{"):
		return &rsast.BlockExpr{Block: p.parseBlock()}
	case t.is("if"):
		return p.parseIf()
	case t.is("while"):
		p.advance()
		cond := p.parseExpr(rsast.PrecJump)
		return &rsast.WhileExpr{Cond: cond, Body: p.parseBlock()}
	case t.is("loop"):
		p.advance()
		return &rsast.LoopExpr{Body: p.parseBlock()}
	case t.is("for"):
		p.advance()
		pat := p.parsePat()
		p.expect("in")
		iter := p.parseExpr(rsast.PrecJump)
		return &rsast.ForLoopExpr{Pat: pat, Iter: iter, Body: p.parseBlock()}
	case t.is("return"):
		p.advance()
		ret := &rsast.ReturnExpr{}
		if p.startsExpr() {
			ret.X = p.parseExpr(rsast.PrecJump)
		}
		return ret
	case t.is("break"):
		p.advance()
		return &rsast.BreakExpr{}
	case t.is("continue"):
		p.advance()
		return &rsast.ContinueExpr{}
	case t.kind == tIdent && !keywords[t.text]:
		return p.parsePathOrMacro()
	}

	p.fail("expected expression, found %s", describe(t))
	return nil
}

func (p *Parser) parsePathOrMacro() rsast.Expr {
	path := &rsast.PathExpr{Segments: []string{p.advance().text}}
	for p.check("::") {
		p.advance()
		path.Segments = append(path.Segments, p.expectIdent())
	}
	if p.check("!") && p.peekAt(1).is("(") {
		p.advance()
		return &rsast.MacroExpr{Name: strings.Join(path.Segments, "::"), Args: p.parseArgs()}
	}
	return path
}

func (p *Parser) parseIf() *rsast.IfExpr {
	p.expect("if")
	x := &rsast.IfExpr{Cond: p.parseExpr(rsast.PrecJump)}
	x.Then = p.parseBlock()
	if p.match("else") {
		if p.check("if") {
			x.Else = p.parseIf()
		} else {
			x.Else = &rsast.BlockExpr{Block: p.parseBlock()}
		}
	}
	return x
}
