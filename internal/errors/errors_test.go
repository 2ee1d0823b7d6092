package errors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tangzhangming/tsrs/internal/i18n"
)

func plainFormatter() *Formatter {
	f := NewFormatter()
	f.Colors = false
	return f
}

func TestFormatCompileError(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)

	err := New(T0001, "main.ts", 2, 9, "regular expression literal")
	err.WithHint("remove it")
	lines := []string{"let a = 1;", "let x = /re/;"}

	out := plainFormatter().FormatCompileError(err, lines)
	got := strings.Split(out, "\n")

	expected := []string{
		"error[T0001]: unsupported expression: regular expression literal",
		" --> main.ts:2:9",
		"  |",
		"2 | let x = /re/;",
		"            ^",
		" = help: remove it",
		"",
	}
	if len(got) != len(expected) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(expected), len(got), out)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestFormatCaretRange(t *testing.T) {
	err := &CompileError{Code: E0007, Message: "x", File: "a.ts", Line: 1, Column: 6, EndColumn: 9}
	f := plainFormatter()
	f.ShowHints = false
	out := f.FormatCompileError(err, []string{"\tfoo bar"})

	// Tab 展开为 4 个空格，第 6 列前显示宽度为 4+4
	if !strings.Contains(out, "1 |     foo bar\n") {
		t.Errorf("expected expanded tab in source line, got:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat(" ", 1+3+8)+"^^^\n") {
		t.Errorf("expected three carets under 'bar', got:\n%s", out)
	}
}

func TestFormatWithoutPosition(t *testing.T) {
	err := New(D0001, "", 0, 0, "missing.ts")
	out := plainFormatter().FormatCompileError(err, nil)
	if out != "error[D0001]: input file not found: missing.ts\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if err.Error() != "input file not found: missing.ts" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}

	err.File = "tsrs.toml"
	if err.Error() != "tsrs.toml: input file not found: missing.ts" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
}

func TestFormatCompileErrorsSummary(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	errs := []*CompileError{
		{Code: E0007, Level: LevelError, Message: "a"},
		{Code: E0007, Level: LevelWarning, Message: "b"},
		{Code: E0007, Level: LevelError, Message: "c"},
	}
	out := plainFormatter().FormatCompileErrors(errs, nil)
	if !strings.HasSuffix(out, "error: aborting due to 2 previous error(s)\n") {
		t.Errorf("unexpected summary: %q", out)
	}
}

func TestGetErrorInfo(t *testing.T) {
	tests := []struct {
		code     string
		ok       bool
		category string
	}{
		{E0007, true, "syntax"},
		{T0001, true, "unsupported"},
		{T0010, true, "unsupported"},
		{T0100, true, "precondition"},
		{T0103, true, "precondition"},
		{D0005, true, "config"},
		{"T9999", false, ""},
		{"X0001", false, ""},
	}
	for _, tt := range tests {
		info, ok := GetErrorInfo(tt.code)
		if ok != tt.ok {
			t.Errorf("%s: expected ok=%v, got %v", tt.code, tt.ok, ok)
			continue
		}
		if ok && info.Category != tt.category {
			t.Errorf("%s: expected category %q, got %q", tt.code, tt.category, info.Category)
		}
	}

	if code := CodeForMessageID(i18n.ErrElseArmShape); code != T0100 {
		t.Errorf("expected T0100, got %q", code)
	}
	if code := CodeForMessageID("no.such.message"); code != "" {
		t.Errorf("expected empty code, got %q", code)
	}
}

func TestInferErrorCode(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	tests := []struct {
		msg  string
		code string
	}{
		{i18n.T(i18n.ErrUnexpectedToken, ")"), E0007},
		{i18n.T(i18n.ErrExpectedToken, "';'"), E0006},
		{i18n.T(i18n.ErrExpectedExpression), E0014},
		{i18n.T(i18n.ErrExpectedIdentifier), E0015},
		{i18n.T(i18n.ErrUnexpectedChar, '@'), E0002},
		{"something else entirely", E0001},
	}
	for _, tt := range tests {
		if got := InferErrorCode(tt.msg); got != tt.code {
			t.Errorf("InferErrorCode(%q): expected %s, got %s", tt.msg, tt.code, got)
		}
	}
}

func TestReporter(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	var buf bytes.Buffer
	r := NewReporterTo(&buf)
	r.SetFormatter(plainFormatter())
	r.SetSource("b.ts", "switch (x) {}")
	r.SetSource("a.ts", "let x = ;")

	sw := New(T0002, "b.ts", 1, 1, "switch statement")
	r.ReportError(sw)
	r.ReportSimple("a.ts", 1, 9, i18n.T(i18n.ErrExpectedExpression))
	r.ReportWarning(&CompileError{Code: T0001, Message: "w"})

	if r.ErrorCount() != 2 || r.WarningCount() != 1 {
		t.Fatalf("expected 2 errors and 1 warning, got %d and %d", r.ErrorCount(), r.WarningCount())
	}
	if len(sw.Hints) != 0 {
		// construct 不在上下文里时不生成 switch 建议
		t.Errorf("expected no hints without construct, got %v", sw.Hints)
	}

	errs := r.Errors()
	if errs[0].File != "a.ts" || errs[0].Code != E0014 {
		t.Errorf("expected a.ts E0014 first, got %s %s", errs[0].File, errs[0].Code)
	}
	if r.GetSourceLine("a.ts", 1) != "let x = ;" {
		t.Errorf("unexpected source line %q", r.GetSourceLine("a.ts", 1))
	}

	r.Summary()
	if !strings.HasSuffix(buf.String(), "error: aborting due to 2 previous error(s)\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	r.Clear()
	if r.HasErrors() {
		t.Error("expected no errors after Clear")
	}
}

func TestSuggestions(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	tests := []struct {
		code    string
		context map[string]interface{}
		hint    string
	}{
		{T0002, map[string]interface{}{"construct": "switch statement"}, i18n.T(i18n.HintUseIfChain)},
		{T0002, map[string]interface{}{"construct": "for-of statement"}, i18n.T(i18n.HintUseWhileLoop)},
		{T0101, nil, i18n.T(i18n.HintAddInitializer)},
		{D0005, nil, i18n.T(i18n.HintRunInit)},
	}
	for _, tt := range tests {
		got := GetSuggestions(tt.code, tt.context)
		if len(got) != 1 || got[0] != tt.hint {
			t.Errorf("%s %v: expected [%q], got %v", tt.code, tt.context, tt.hint, got)
		}
	}
	if got := GetSuggestions(T0002, map[string]interface{}{"construct": "labeled statement"}); got != nil {
		t.Errorf("expected no hint, got %v", got)
	}
}

func TestFindSimilar(t *testing.T) {
	commands := []string{"parse-ts", "parse-rs", "transpile", "build", "init", "version", "help"}
	tests := []struct {
		name     string
		expected string
	}{
		{"biuld", "build"},
		{"transpil", "transpile"},
		{"Init", "init"},
		{"deploy", ""},
	}
	for _, tt := range tests {
		if got := FindSimilar(tt.name, commands, 2); got != tt.expected {
			t.Errorf("FindSimilar(%q): expected %q, got %q", tt.name, tt.expected, got)
		}
	}
}

func TestStrip(t *testing.T) {
	if got := Strip(paint("hello", ColorBoldRed)); got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
}
