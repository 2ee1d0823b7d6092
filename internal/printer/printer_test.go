package printer

import (
	"strings"
	"testing"

	"github.com/tangzhangming/tsrs/internal/rsast"
)

func exprString(x rsast.Expr) string {
	p := NewPrinter(nil)
	p.printExpr(x, rsast.PrecJump)
	return p.buf.String()
}

func bin(op rsast.BinOp, l, r rsast.Expr) rsast.Expr {
	return &rsast.BinaryExpr{Op: op, Left: l, Right: r}
}

var (
	a = rsast.Ident("a")
	b = rsast.Ident("b")
	c = rsast.Ident("c")
)

func TestPrintPrecedence(t *testing.T) {
	tests := []struct {
		expr     rsast.Expr
		expected string
	}{
		{bin(rsast.Mul, bin(rsast.Add, a, b), c), "(a + b) * c"},
		{bin(rsast.Add, a, bin(rsast.Mul, b, c)), "a + b * c"},
		{bin(rsast.Add, a, bin(rsast.Add, b, c)), "a + (b + c)"},
		{bin(rsast.Sub, bin(rsast.Sub, a, b), c), "a - b - c"},
		{bin(rsast.Eq, bin(rsast.Eq, a, b), c), "(a == b) == c"},
		{bin(rsast.And, bin(rsast.Or, a, b), c), "(a || b) && c"},
		{bin(rsast.Or, bin(rsast.And, a, b), c), "a && b || c"},
		{bin(rsast.BitAnd, bin(rsast.Shl, a, b), c), "a << b & c"},
		{bin(rsast.Eq, bin(rsast.BitAnd, a, b), c), "a & b == c"},
		{&rsast.UnaryExpr{Op: rsast.Neg, X: bin(rsast.Add, a, b)}, "-(a + b)"},
		{&rsast.UnaryExpr{Op: rsast.Not, X: &rsast.ParenExpr{X: bin(rsast.Ge, a, b)}}, "!(a >= b)"},
		{&rsast.AssignOpExpr{Op: rsast.Sub, Left: a, Right: rsast.Int(1)}, "a -= 1"},
		{&rsast.AssignExpr{Left: a, Right: &rsast.AssignExpr{Left: b, Right: c}}, "a = b = c"},
		{bin(rsast.Add, &rsast.AssignExpr{Left: a, Right: b}, c), "(a = b) + c"},
		{rsast.Int(-3), "-3"},
		{&rsast.MethodCallExpr{Receiver: rsast.Int(-3), Method: "abs"}, "(-3).abs()"},
		{&rsast.MethodCallExpr{
			Receiver: &rsast.RangeExpr{Start: rsast.Int(0), End: rsast.Int(10)},
			Method:   "rev",
		}, "(0..10).rev()"},
		{&rsast.RangeExpr{Start: rsast.Int(-5), End: bin(rsast.Add, a, rsast.Int(1)), Closed: true}, "-5..=a + 1"},
		{&rsast.MethodCallExpr{Receiver: a, Method: "log", Args: []rsast.Expr{rsast.Str("x"), b}}, `a.log("x", b)`},
		{&rsast.MacroExpr{Name: "println", Args: []rsast.Expr{rsast.Str("{}"), a}}, `println!("{}", a)`},
		{&rsast.CallExpr{Func: &rsast.PathExpr{Segments: []string{"std", "process", "exit"}}, Args: []rsast.Expr{rsast.Int(0)}}, "std::process::exit(0)"},
		{&rsast.ReturnExpr{X: a}, "return a"},
		{&rsast.ReturnExpr{}, "return"},
		{&rsast.LitExpr{Lit: &rsast.LitFloat{Text: "1.5"}}, "1.5"},
		{rsast.Bool(false), "false"},
	}

	for _, tt := range tests {
		if got := exprString(tt.expr); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", `"hello"`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\dir`, `"C:\\dir"`},
		{"a\nb\tc\r", `"a\nb\tc\r"`},
		{"\x00\x01", `"\0\u{1}"`},
		{"中文 ✓", `"中文 ✓"`},
	}
	for _, tt := range tests {
		if got := Quote(tt.input); got != tt.expected {
			t.Errorf("Quote(%q): expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func mainFile(stmts ...rsast.Stmt) *rsast.File {
	return &rsast.File{Items: []rsast.Item{
		&rsast.UseItem{Path: []string{"ts_std"}, Glob: true},
		&rsast.FnItem{
			Attrs: []*rsast.Attribute{{Path: "allow", Args: []string{"clippy::all"}}},
			Name:  "main",
			Body:  &rsast.Block{Stmts: stmts},
		},
	}}
}

func TestPrintFile(t *testing.T) {
	log := func(x rsast.Expr) rsast.Stmt {
		return rsast.Semi(&rsast.MethodCallExpr{Receiver: rsast.Ident("console"), Method: "log", Args: []rsast.Expr{x}})
	}
	file := mainFile(
		&rsast.LocalStmt{Pat: &rsast.PatIdent{Name: "d", Mutable: true}, Init: rsast.Int(3)},
		rsast.Semi(&rsast.IfExpr{
			Cond: bin(rsast.Eq, rsast.Ident("d"), rsast.Int(1)),
			Then: &rsast.Block{Stmts: []rsast.Stmt{log(rsast.Str("one"))}},
			Else: &rsast.BlockExpr{Block: &rsast.Block{}},
		}),
		rsast.Semi(&rsast.WhileExpr{
			Cond: bin(rsast.Gt, rsast.Ident("d"), rsast.Int(0)),
			Body: &rsast.Block{Stmts: []rsast.Stmt{
				rsast.Semi(&rsast.AssignOpExpr{Op: rsast.Sub, Left: rsast.Ident("d"), Right: rsast.Int(1)}),
			}},
		}),
		rsast.Semi(&rsast.LoopExpr{Body: &rsast.Block{Stmts: []rsast.Stmt{rsast.Semi(&rsast.BreakExpr{})}}}),
		rsast.Semi(&rsast.ForLoopExpr{
			Pat:  &rsast.PatIdent{Name: "i"},
			Iter: &rsast.RangeExpr{Start: rsast.Int(0), End: rsast.Int(3)},
			Body: &rsast.Block{},
		}),
		rsast.Semi(&rsast.BlockExpr{Block: &rsast.Block{Stmts: []rsast.Stmt{rsast.Semi(&rsast.ContinueExpr{})}}}),
	)

	expected := `use ts_std::*;
#[allow(clippy::all)]
fn main() {
    let mut d = 3;
    if d == 1 {
        console.log("one");
    } else {};
    while d > 0 {
        d -= 1;
    }
    loop {
        break;
    }
    for i in 0..3 {}
    {
        continue;
    };
}
`
	if got := Print(file, nil); got != expected {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestPrintEmptyMainAndTabs(t *testing.T) {
	opts := DefaultOptions()
	opts.IndentStyle = "tabs"

	if got := Print(mainFile(), opts); !strings.HasSuffix(got, "fn main() {}\n") {
		t.Errorf("expected empty main, got:\n%s", got)
	}

	got := Print(mainFile(rsast.Semi(rsast.Ident("x"))), opts)
	if !strings.Contains(got, "\n\tx;\n") {
		t.Errorf("expected tab indentation, got:\n%q", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		style string
		size  int
		ok    bool
	}{
		{"spaces", 4, true},
		{"spaces", 0, false},
		{"tabs", 0, true},
		{"mixed", 4, false},
	}
	for _, tt := range tests {
		opts := &Options{IndentStyle: tt.style, IndentSize: tt.size}
		if err := opts.Validate(); (err == nil) != tt.ok {
			t.Errorf("%s/%d: expected ok=%v, got %v", tt.style, tt.size, tt.ok, err)
		}
	}
}

func TestDebug(t *testing.T) {
	file := mainFile(&rsast.LocalStmt{Pat: &rsast.PatIdent{Name: "a"}, Init: bin(rsast.Add, rsast.Int(1), rsast.Int(2))})
	expected := `File
  Use ts_std::*
  Fn main
    Attribute allow(clippy::all)
    Block
      Local a
        Binary +
          Int 1
          Int 2
`
	if got := Debug(file); got != expected {
		t.Errorf("unexpected dump:\n%s\nexpected:\n%s", got, expected)
	}
}
