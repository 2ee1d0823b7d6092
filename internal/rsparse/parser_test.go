package rsparse

import (
	"os"
	"strings"
	"testing"

	"github.com/tangzhangming/tsrs/internal/printer"
	"github.com/tangzhangming/tsrs/internal/rsast"
)

func parseOK(t *testing.T, src string) *rsast.File {
	t.Helper()
	p := New(src, "test.rs")
	file := p.Parse()
	if p.HasErrors() {
		for _, err := range p.Errors() {
			t.Errorf("parser error: %v", err)
		}
		t.FailNow()
	}
	return file
}

// 打印结果再解析、再打印，两次输出应相同
func TestRoundTrip(t *testing.T) {
	golden, err := os.ReadFile("../transpiler/testdata/statements.rs")
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}

	tests := []string{
		string(golden),
		"use ts_std::*;\nfn main() {}\n",
		"fn main() {\n    let x = (a + b) * c;\n    x -= -3;\n    y = !(a >= b) && c || d;\n}\n",
		"fn main() {\n    for i in 0..10 {}\n    for j in (-5..=a + 1).rev() {\n        continue;\n    }\n}\n",
		"fn main() {\n    println!(\"{} \\\"q\\\"\\n\", a.len());\n    std::process::exit(0);\n}\n",
		"fn main() {\n    let v = 1.5e3;\n    if a {\n        return;\n    }\n    if b {\n        return a;\n    } else if c {} else {\n        break;\n    };\n}\n",
		"#[allow(dead_code, unused)]\nfn main() {\n    fn inner() {}\n    x << 2 & y;\n}\n",
	}

	for _, src := range tests {
		file := parseOK(t, src)
		got := printer.Print(file, nil)
		if got != src {
			t.Errorf("round trip mismatch:\n%s\nexpected:\n%s", got, src)
		}
	}
}

func TestParseStructure(t *testing.T) {
	file := parseOK(t, "use ts_std::*;\n#[allow(clippy::all)]\nfn main() {\n    let mut d = 10;\n    while d >= 0 {\n        d -= 1;\n    }\n}\n")

	if len(file.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(file.Items))
	}
	use, ok := file.Items[0].(*rsast.UseItem)
	if !ok || !use.Glob || strings.Join(use.Path, "::") != "ts_std" {
		t.Errorf("expected use ts_std::*, got %#v", file.Items[0])
	}
	fn, ok := file.Items[1].(*rsast.FnItem)
	if !ok {
		t.Fatalf("expected *rsast.FnItem, got %T", file.Items[1])
	}
	if len(fn.Attrs) != 1 || fn.Attrs[0].Path != "allow" || fn.Attrs[0].Args[0] != "clippy::all" {
		t.Errorf("unexpected attributes: %#v", fn.Attrs)
	}
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body.Stmts))
	}
	local, ok := fn.Body.Stmts[0].(*rsast.LocalStmt)
	if !ok || !local.Pat.Mutable || local.Pat.Name != "d" {
		t.Errorf("expected let mut d, got %#v", fn.Body.Stmts[0])
	}
	stmt, ok := fn.Body.Stmts[1].(*rsast.ExprStmt)
	if !ok {
		t.Fatalf("expected *rsast.ExprStmt, got %T", fn.Body.Stmts[1])
	}
	if stmt.Semi {
		t.Errorf("expected while without semicolon")
	}
	while, ok := stmt.X.(*rsast.WhileExpr)
	if !ok {
		t.Fatalf("expected *rsast.WhileExpr, got %T", stmt.X)
	}
	assign, ok := while.Body.Stmts[0].(*rsast.ExprStmt).X.(*rsast.AssignOpExpr)
	if !ok || assign.Op != rsast.Sub {
		t.Errorf("expected d -= 1, got %#v", while.Body.Stmts[0])
	}
}

func TestParsePrecedence(t *testing.T) {
	file := parseOK(t, "fn main() {\n    a = b + c * d .. e;\n}\n")
	x := file.Items[0].(*rsast.FnItem).Body.Stmts[0].(*rsast.ExprStmt).X

	assign, ok := x.(*rsast.AssignExpr)
	if !ok {
		t.Fatalf("expected *rsast.AssignExpr, got %T", x)
	}
	rng, ok := assign.Right.(*rsast.RangeExpr)
	if !ok {
		t.Fatalf("expected *rsast.RangeExpr, got %T", assign.Right)
	}
	sum, ok := rng.Start.(*rsast.BinaryExpr)
	if !ok || sum.Op != rsast.Add {
		t.Fatalf("expected a + at range start, got %#v", rng.Start)
	}
	if mul, ok := sum.Right.(*rsast.BinaryExpr); !ok || mul.Op != rsast.Mul {
		t.Errorf("expected c * d on the right, got %#v", sum.Right)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"fn main() { let x = 1 }", "test.rs:1:23: expected ';'"},
		{"fn main(a) {}", "function parameters are not supported"},
		{"struct S;", "expected item, found 'struct'"},
		{"fn main() { \"abc }", "unterminated string literal"},
		{"fn main() { x = @; }", "unexpected character '@'"},
		{"fn main() { x = \"\\q\"; }", "invalid escape sequence"},
		{"fn main() {", "expected '}', found end of file"},
	}

	for _, tt := range tests {
		p := New(tt.input, "test.rs")
		if file := p.Parse(); file != nil {
			t.Errorf("%q: expected nil file on error", tt.input)
		}
		if !p.HasErrors() {
			t.Errorf("%q: expected error", tt.input)
			continue
		}
		if got := p.Errors()[0].Error(); !strings.Contains(got, tt.expected) {
			t.Errorf("%q: expected error containing %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestLexerStrings(t *testing.T) {
	toks, err := newLexer(`"a\tb" "\u{4e2d}" "\x41" "x\
    y"`, "test.rs").tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"a\tb", "中", "A", "xy"}
	for i, want := range expected {
		if toks[i].kind != tString || toks[i].text != want {
			t.Errorf("token %d: expected %q, got %q", i, want, toks[i].text)
		}
	}
}

func TestLexerRanges(t *testing.T) {
	toks, err := newLexer("0..=10 1.5 2e3 3..x", "test.rs").tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, tk := range toks[:len(toks)-1] {
		got = append(got, tk.text)
	}
	if strings.Join(got, " ") != "0 ..= 10 1.5 2e3 3 .. x" {
		t.Errorf("unexpected tokens: %v", got)
	}
	if toks[3].kind != tFloat || toks[4].kind != tFloat {
		t.Errorf("expected float tokens for 1.5 and 2e3")
	}
}
