package parser

import (
	"strings"
	"testing"

	"github.com/tangzhangming/tsrs/internal/ast"
	"github.com/tangzhangming/tsrs/internal/token"
)

// parseOK 解析源码并断言无错误
func parseOK(t *testing.T, src string) *ast.Module {
	t.Helper()
	p := New(src, "test.ts")
	m := p.Parse()
	if p.HasErrors() {
		for _, err := range p.Errors() {
			t.Errorf("parser error in %q: %v", src, err)
		}
		t.FailNow()
	}
	return m
}

// stmtAt 取第 i 个模块项中的语句
func stmtAt(t *testing.T, m *ast.Module, i int) ast.Statement {
	t.Helper()
	if len(m.Body) <= i {
		t.Fatalf("expected at least %d items, got %d", i+1, len(m.Body))
	}
	item, ok := m.Body[i].(*ast.StmtItem)
	if !ok {
		t.Fatalf("expected *ast.StmtItem, got %T", m.Body[i])
	}
	return item.Stmt
}

// exprOf 解析单条表达式语句
func exprOf(t *testing.T, src string) ast.Expression {
	t.Helper()
	m := parseOK(t, src)
	stmt, ok := stmtAt(t, m, 0).(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", stmtAt(t, m, 0))
	}
	return stmt.Expr
}

// group 输出完全加括号的表达式，便于检查结合性与优先级
func group(e ast.Expression) string {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return "(" + group(e.Left) + " " + e.Operator.Literal + " " + group(e.Right) + ")"
	case *ast.UnaryExpr:
		return "(" + e.Operator.Literal + group(e.Operand) + ")"
	case *ast.AssignExpr:
		left := e.Left.String()
		if le, ok := e.Left.(ast.Expression); ok {
			left = group(le)
		}
		return "(" + left + " " + e.Operator.Literal + " " + group(e.Right) + ")"
	case *ast.ConditionalExpr:
		return "(" + group(e.Test) + " ? " + group(e.Consequent) + " : " + group(e.Alternate) + ")"
	case *ast.ParenExpr:
		return "[" + group(e.Expr) + "]"
	}
	return e.String()
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"1 * 2 + 3;", "((1 * 2) + 3)"},
		{"a - b - c;", "((a - b) - c)"},
		{"a ** b ** c;", "(a ** (b ** c))"},
		{"a = b = c;", "(a = (b = c))"},
		{"a || b && c;", "(a || (b && c))"},
		{"a == b < c;", "(a == (b < c))"},
		{"a & b | c ^ d;", "((a & b) | (c ^ d))"},
		{"a << 1 + 2;", "(a << (1 + 2))"},
		{"-a * b;", "((-a) * b)"},
		{"!a && b;", "((!a) && b)"},
		{"a ? b : c ? d : e;", "(a ? b : (c ? d : e))"},
		{"(a + b) * c;", "([(a + b)] * c)"},
		{"x += y * 2;", "(x += (y * 2))"},
		{"a ?? b;", "(a ?? b)"},
	}

	for _, tt := range tests {
		got := group(exprOf(t, tt.input))
		if got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"42;", 42},
		{"1.5;", 1.5},
		{".5;", 0.5},
		{"0x1F;", 31},
		{"0b101;", 5},
		{"0o17;", 15},
		{"1_000;", 1000},
		{"2e3;", 2000},
	}

	for _, tt := range tests {
		lit, ok := exprOf(t, tt.input).(*ast.NumberLit)
		if !ok {
			t.Errorf("%q: expected *ast.NumberLit", tt.input)
			continue
		}
		if lit.Value != tt.expected {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.expected, lit.Value)
		}
	}

	str, ok := exprOf(t, `"a\tb";`).(*ast.StringLit)
	if !ok || str.Value != "a\tb" {
		t.Errorf("expected string literal a\\tb, got %v", str)
	}
	if _, ok := exprOf(t, "10n;").(*ast.BigIntLit); !ok {
		t.Errorf("expected *ast.BigIntLit")
	}
	if _, ok := exprOf(t, "null;").(*ast.NullLit); !ok {
		t.Errorf("expected *ast.NullLit")
	}
	re, ok := exprOf(t, "/ab+c/gi;").(*ast.RegExpLit)
	if !ok || re.Pattern != "ab+c" || re.Flags != "gi" {
		t.Errorf("expected regexp /ab+c/gi, got %v", re)
	}
}

func TestParseTemplate(t *testing.T) {
	tpl, ok := exprOf(t, "`a${x + 1}b${y}`;").(*ast.TemplateLit)
	if !ok {
		t.Fatalf("expected *ast.TemplateLit")
	}
	if len(tpl.Quasis) != 3 || len(tpl.Exprs) != 2 {
		t.Fatalf("expected 3 quasis and 2 exprs, got %d and %d", len(tpl.Quasis), len(tpl.Exprs))
	}
	if _, ok := tpl.Exprs[0].(*ast.BinaryExpr); !ok {
		t.Errorf("expected first interpolation to be binary, got %T", tpl.Exprs[0])
	}
}

func TestParseCallsAndMembers(t *testing.T) {
	call, ok := exprOf(t, `console.log("hi", 1);`).(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr")
	}
	if len(call.Args) != 2 {
		t.Errorf("expected 2 args, got %d", len(call.Args))
	}
	member, ok := call.Callee.(*ast.MemberExpr)
	if !ok || member.Computed {
		t.Fatalf("expected non-computed member callee, got %T", call.Callee)
	}
	if member.Object.String() != "console" || member.Property.String() != "log" {
		t.Errorf("expected console.log, got %s", member)
	}

	index, ok := exprOf(t, "a[0];").(*ast.MemberExpr)
	if !ok || !index.Computed {
		t.Errorf("expected computed member")
	}

	if _, ok := exprOf(t, "a?.b.c;").(*ast.OptionalChainExpr); !ok {
		t.Errorf("expected *ast.OptionalChainExpr")
	}
	if _, ok := exprOf(t, "new Foo(1);").(*ast.NewExpr); !ok {
		t.Errorf("expected *ast.NewExpr")
	}

	generic, ok := exprOf(t, "f<number>(x);").(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected generic call to parse as *ast.CallExpr")
	}
	if generic.Callee.String() != "f" {
		t.Errorf("expected callee f, got %s", generic.Callee)
	}
}

func TestParseArrowFunctions(t *testing.T) {
	tests := []struct {
		input  string
		params int
		async  bool
	}{
		{"x => x;", 1, false},
		{"(a, b) => a + b;", 2, false},
		{"() => {};", 0, false},
		{"(a: number, b?: string): void => {};", 2, false},
		{"async x => x;", 1, true},
		{"async (x) => await x;", 1, true},
	}

	for _, tt := range tests {
		arrow, ok := exprOf(t, tt.input).(*ast.ArrowFunc)
		if !ok {
			t.Errorf("%q: expected *ast.ArrowFunc", tt.input)
			continue
		}
		if len(arrow.Params) != tt.params {
			t.Errorf("%q: expected %d params, got %d", tt.input, tt.params, len(arrow.Params))
		}
		if arrow.Async != tt.async {
			t.Errorf("%q: expected async=%v", tt.input, tt.async)
		}
	}
}

func TestParseTypeScriptErasure(t *testing.T) {
	m := parseOK(t, "let x: Array<Map<string, number>> = y as any;")
	decl := stmtAt(t, m, 0).(*ast.DeclStmt).Decl.(*ast.VarDecl)
	d := decl.Decls[0]
	if d.Type == nil || d.Type.Text != "Array<Map<string, number>>" {
		t.Errorf("expected type text Array<Map<string, number>>, got %v", d.Type)
	}
	as, ok := d.Init.(*ast.AsExpr)
	if !ok || as.Type.Text != "any" {
		t.Errorf("expected as-expression with type any, got %T", d.Init)
	}

	tests := []struct {
		input string
		check func(ast.Statement) bool
	}{
		{"interface A { x: number }", func(s ast.Statement) bool {
			_, ok := s.(*ast.DeclStmt).Decl.(*ast.InterfaceDecl)
			return ok
		}},
		{"type T = string | number;", func(s ast.Statement) bool {
			_, ok := s.(*ast.DeclStmt).Decl.(*ast.TypeAliasDecl)
			return ok
		}},
		{"enum Color { Red, Green = 2 }", func(s ast.Statement) bool {
			e, ok := s.(*ast.DeclStmt).Decl.(*ast.EnumDecl)
			return ok && len(e.Members) == 2
		}},
		{"namespace A.B { let x = 1; }", func(s ast.Statement) bool {
			n, ok := s.(*ast.DeclStmt).Decl.(*ast.NamespaceDecl)
			return ok && len(n.Name) == 2
		}},
		{"declare var x: number;", func(s ast.Statement) bool {
			v, ok := s.(*ast.DeclStmt).Decl.(*ast.VarDecl)
			return ok && v.Declare
		}},
		{"x!;", func(s ast.Statement) bool {
			_, ok := s.(*ast.ExprStmt).Expr.(*ast.NonNullExpr)
			return ok
		}},
		{"<number>x;", func(s ast.Statement) bool {
			_, ok := s.(*ast.ExprStmt).Expr.(*ast.TypeAssertionExpr)
			return ok
		}},
		{"<Array<number>>x;", func(s ast.Statement) bool {
			a, ok := s.(*ast.ExprStmt).Expr.(*ast.TypeAssertionExpr)
			return ok && a.Type.Text == "Array<number>"
		}},
		{"x satisfies T;", func(s ast.Statement) bool {
			_, ok := s.(*ast.ExprStmt).Expr.(*ast.SatisfiesExpr)
			return ok
		}},
		{"function f<T>(a: T): T { return a; }", func(s ast.Statement) bool {
			f, ok := s.(*ast.DeclStmt).Decl.(*ast.FuncDecl)
			return ok && f.ReturnType != nil && f.ReturnType.Text == "T"
		}},
	}

	for _, tt := range tests {
		m := parseOK(t, tt.input)
		if !tt.check(stmtAt(t, m, 0)) {
			t.Errorf("%q: unexpected tree %s", tt.input, ast.Dump(m))
		}
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"if (a) b; else c;", "if statement"},
		{"while (a) {}", "while statement"},
		{"do { a; } while (b);", "do-while statement"},
		{"for (let i = 0; i < 10; i++) {}", "for statement"},
		{"for (;;) {}", "for statement"},
		{"for (const k in o) {}", "for-in statement"},
		{"for (const x of xs) {}", "for-of statement"},
		{"switch (x) { case 1: break; default: }", "switch statement"},
		{"try { a(); } catch (e) {} finally {}", "try statement"},
		{"try { a(); } catch {}", "try statement"},
		{"throw new Error();", "throw statement"},
		{"outer: for (;;) { break outer; }", "labeled statement"},
		{"debugger;", "debugger statement"},
		{";", "empty statement"},
		{"{ let a = 1; }", "block statement"},
		{"function* g() { yield 1; }", "function declaration"},
		{"class A extends B { x = 1; static y; m() {} get z() { return 1; } }", "class declaration"},
	}

	for _, tt := range tests {
		m := parseOK(t, tt.input)
		got := ast.KindOf(stmtAt(t, m, 0))
		if got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestParseForStatementParts(t *testing.T) {
	m := parseOK(t, "for (let i = 10; i >= 0; i -= 2) { log(i); }")
	stmt := stmtAt(t, m, 0).(*ast.ForStmt)

	init, ok := stmt.Init.(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl init, got %T", stmt.Init)
	}
	if init.Kind.Type != token.LET || len(init.Decls) != 1 {
		t.Errorf("expected single let declarator")
	}
	test, ok := stmt.Test.(*ast.BinaryExpr)
	if !ok || test.Operator.Type != token.GE {
		t.Errorf("expected >= test, got %v", stmt.Test)
	}
	update, ok := stmt.Update.(*ast.AssignExpr)
	if !ok || update.Operator.Type != token.MINUS_ASSIGN {
		t.Errorf("expected -= update, got %v", stmt.Update)
	}

	// for 头部中的 in 不能被当作二元运算符
	m = parseOK(t, "for (x in o) {}")
	forIn := stmtAt(t, m, 0).(*ast.ForInStmt)
	if _, ok := forIn.Left.(*ast.Ident); !ok {
		t.Errorf("expected identifier left side, got %T", forIn.Left)
	}
}

func TestParseASI(t *testing.T) {
	m := parseOK(t, "let a = 1\nlet b = 2\na\n++b")
	if len(m.Body) != 4 {
		t.Fatalf("expected 4 items, got %d", len(m.Body))
	}
	if _, ok := stmtAt(t, m, 2).(*ast.ExprStmt).Expr.(*ast.Ident); !ok {
		t.Errorf("expected 'a' to end at the newline")
	}
	upd, ok := stmtAt(t, m, 3).(*ast.ExprStmt).Expr.(*ast.UpdateExpr)
	if !ok || !upd.Prefix {
		t.Errorf("expected prefix ++b")
	}

	// return 后换行时返回值为空
	m = parseOK(t, "function f() { return\n1 }")
	fn := stmtAt(t, m, 0).(*ast.DeclStmt).Decl.(*ast.FuncDecl)
	ret := fn.Body.Body[0].(*ast.ReturnStmt)
	if ret.Value != nil {
		t.Errorf("expected bare return, got %v", ret.Value)
	}
}

func TestParseVarDeclarations(t *testing.T) {
	tests := []struct {
		input string
		kind  token.TokenType
		count int
	}{
		{"var a = 1;", token.VAR, 1},
		{"let a = 1, b;", token.LET, 2},
		{"const a = 1, b = 2;", token.CONST, 2},
		{"let [a, , b] = xs;", token.LET, 1},
		{"const { a, b: c, ...rest } = o;", token.CONST, 1},
		{"let x!: number;", token.LET, 1},
	}

	for _, tt := range tests {
		m := parseOK(t, tt.input)
		decl, ok := stmtAt(t, m, 0).(*ast.DeclStmt).Decl.(*ast.VarDecl)
		if !ok {
			t.Errorf("%q: expected *ast.VarDecl", tt.input)
			continue
		}
		if decl.Kind.Type != tt.kind {
			t.Errorf("%q: expected kind %s, got %s", tt.input, tt.kind, decl.Kind.Type)
		}
		if len(decl.Decls) != tt.count {
			t.Errorf("%q: expected %d declarators, got %d", tt.input, tt.count, len(decl.Decls))
		}
	}
}

func TestParseDestructuringAssignment(t *testing.T) {
	assign, ok := exprOf(t, "[a, b] = [b, a];").(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected *ast.AssignExpr")
	}
	if _, ok := assign.Left.(*ast.ArrayPattern); !ok {
		t.Errorf("expected array pattern target, got %T", assign.Left)
	}

	assign, ok = exprOf(t, "({ a, b } = o);").(*ast.ParenExpr).Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected parenthesized assignment")
	}
	if _, ok := assign.Left.(*ast.ObjectPattern); !ok {
		t.Errorf("expected object pattern target, got %T", assign.Left)
	}
}

func TestParseModuleItems(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`import x from "m";`, "import declaration"},
		{`import { a as b, type C } from "m";`, "import declaration"},
		{`import * as ns from "m";`, "import declaration"},
		{`import "side-effect";`, "import declaration"},
		{`export const a = 1;`, "export declaration"},
		{`export default function () {}`, "export default declaration"},
		{`export { a, b as c };`, "named export"},
		{`export * from "m";`, "export all declaration"},
		{`declare module "m" { export let x: number; }`, "ambient module declaration"},
	}

	for _, tt := range tests {
		m := parseOK(t, tt.input)
		if len(m.Body) != 1 {
			t.Errorf("%q: expected 1 item, got %d", tt.input, len(m.Body))
			continue
		}
		got := ast.KindOf(m.Body[0])
		if got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.expected, got)
		}
	}

	m := parseOK(t, "import(\"m\");")
	if _, ok := stmtAt(t, m, 0).(*ast.ExprStmt).Expr.(*ast.ImportExpr); !ok {
		t.Errorf("expected dynamic import expression")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"let = 1;", "identifier"},
		{"const x;", "const"},
		{"1 = 2;", "assignment target"},
		{"throw\nx;", "throw"},
		{"(a + ;", "unexpected token"},
		{"for (let x = 1 of xs) {}", "initializer"},
	}

	for _, tt := range tests {
		p := New(tt.input, "test.ts")
		p.Parse()
		if !p.HasErrors() {
			t.Errorf("%q: expected errors", tt.input)
			continue
		}
		msg := p.Errors()[0].Message
		if !strings.Contains(msg, tt.want) {
			t.Errorf("%q: expected message containing %q, got %q", tt.input, tt.want, msg)
		}
	}
}

func TestParseJSXRejected(t *testing.T) {
	p := New("let a = <div/>;", "view.tsx")
	p.Parse()
	if !p.HasErrors() {
		t.Fatalf("expected JSX error in .tsx file")
	}
	if !strings.Contains(p.Errors()[0].Message, "JSX") {
		t.Errorf("expected JSX message, got %q", p.Errors()[0].Message)
	}
}

func TestParseRecovery(t *testing.T) {
	p := New("let a = ;\nlet b = 2;\nfunction f() { let = ; return 1; }\nlet c = 3;", "test.ts")
	m := p.Parse()
	if !p.HasErrors() {
		t.Fatalf("expected errors")
	}
	var names []string
	for _, item := range m.Body {
		si, ok := item.(*ast.StmtItem)
		if !ok {
			continue
		}
		ds, ok := si.Stmt.(*ast.DeclStmt)
		if !ok {
			continue
		}
		if v, ok := ds.Decl.(*ast.VarDecl); ok {
			names = append(names, v.Decls[0].Name.String())
		}
	}
	if strings.Join(names, ",") != "b,c" {
		t.Errorf("expected recovered declarations b,c, got %v", names)
	}
}

func TestParseErrorPosition(t *testing.T) {
	p := New("let a = 1;\nlet b = ;", "test.ts")
	p.Parse()
	if !p.HasErrors() {
		t.Fatalf("expected errors")
	}
	pos := p.Errors()[0].Pos
	if pos.Line != 2 || pos.Column != 9 {
		t.Errorf("expected error at 2:9, got %d:%d", pos.Line, pos.Column)
	}
}
