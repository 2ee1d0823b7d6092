package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/protocol"

	"github.com/tangzhangming/tsrs/internal/i18n"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{stdout: &out, stderr: &errOut}
	code = a.run(append([]string{"--lang", "en"}, args...))
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func jsonDiagnostics(t *testing.T, stdout string) []protocol.PublishDiagnosticsParams {
	t.Helper()
	var files []protocol.PublishDiagnosticsParams
	if err := json.Unmarshal([]byte(stdout), &files); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}
	return files
}

func TestPreprocessArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
		lang string
	}{
		{[]string{"--lang", "zh", "help"}, "help", "zh"},
		{[]string{"build", "-lang=en", "-j", "2"}, "build -j 2", "en"},
		{[]string{"--lang=zh-CN", "version"}, "version", "zh-CN"},
	}

	for _, tt := range tests {
		globalLang = ""
		got := strings.Join(preprocessArgs(tt.args), " ")
		if got != tt.want || globalLang != tt.lang {
			t.Errorf("preprocessArgs(%v): expected %q lang %q, got %q lang %q", tt.args, tt.want, tt.lang, got, globalLang)
		}
	}
	globalLang = ""
}

func TestSetLanguage(t *testing.T) {
	defer setLanguage("en")

	tests := []struct {
		input string
		want  Language
	}{
		{"zh_CN.UTF-8", LangChinese},
		{"zh-Hans", LangChinese},
		{"en_US.UTF-8", LangEnglish},
		{"fr", LangEnglish},
	}
	for _, tt := range tests {
		setLanguage(tt.input)
		if GetLanguage() != tt.want || i18n.GetLanguage() != i18n.Language(tt.want) {
			t.Errorf("setLanguage(%q): expected %s, got %s (internal %s)", tt.input, tt.want, GetLanguage(), i18n.GetLanguage())
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "transpil")
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "Did you mean 'transpile'?") {
		t.Errorf("expected suggestion, got:\n%s", stderr)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != 0 || !strings.Contains(stdout, "tsrs v"+Version) {
		t.Errorf("unexpected version output (%d): %s", code, stdout)
	}
}

func TestTranspile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "main.ts")
	writeFile(t, input, "const a = 1;\nconsole.log(a);\n")

	code, stdout, stderr := runCLI(t, "transpile", input)
	if code != 0 {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "main.rs") {
		t.Errorf("expected output path in %q", stdout)
	}
	data, err := os.ReadFile(filepath.Join(dir, "main.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "    let a = 1;\n    console.log(a);\n") {
		t.Errorf("unexpected output:\n%s", data)
	}
}

func TestTranspileUsesConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tsrs.toml"), "[transpile]\nnumber_mode = \"float\"\n")
	input := filepath.Join(dir, "src", "a.ts")
	writeFile(t, input, "let a = 1;")
	output := filepath.Join(dir, "a.rs")

	if code, _, stderr := runCLI(t, "transpile", input, output); code != 0 {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	data, _ := os.ReadFile(output)
	if !strings.Contains(string(data), "let mut a = 1.0;") {
		t.Errorf("expected float output, got:\n%s", data)
	}
}

func TestTranspileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.ts")
	writeFile(t, bad, "switch (x) {}")
	good := filepath.Join(dir, "good.ts")
	writeFile(t, good, "let a = 1;")

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"missing input", []string{filepath.Join(dir, "nope.ts")}, "D0001"},
		{"missing output dir", []string{good, filepath.Join(dir, "out", "good.rs")}, "D0002"},
		{"unsupported", []string{bad}, "T0002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, append([]string{"transpile", "-json"}, tt.args...)...)
			if code != 1 {
				t.Errorf("expected exit code 1, got %d", code)
			}
			files := jsonDiagnostics(t, stdout)
			if len(files) != 1 || len(files[0].Diagnostics) == 0 {
				t.Fatalf("expected diagnostics, got %s", stdout)
			}
			if got := files[0].Diagnostics[0].Code; got != tt.code {
				t.Errorf("expected code %s, got %v", tt.code, got)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "bad.rs")); !os.IsNotExist(err) {
		t.Errorf("expected no output for failed transpile")
	}
}

func TestTranspileJSONSuccess(t *testing.T) {
	input := filepath.Join(t.TempDir(), "a.ts")
	writeFile(t, input, "let a = 1;")
	code, stdout, _ := runCLI(t, "transpile", "-json", input)
	if code != 0 || strings.TrimSpace(stdout) != "[]" {
		t.Errorf("expected empty diagnostics, got %d %q", code, stdout)
	}
}

func TestInitAndBuild(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My App")

	code, stdout, stderr := runCLI(t, "init", dir)
	if code != 0 {
		t.Fatalf("init failed (%d): %s", code, stderr)
	}
	if !strings.Contains(stdout, "Project 'my-app' created") {
		t.Errorf("unexpected init output:\n%s", stdout)
	}
	for _, name := range []string{"tsrs.toml", "src/main.ts", "ts_std/Cargo.toml", "ts_std/src/lib.rs"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to be created: %v", name, err)
		}
	}
	if code, _, _ := runCLI(t, "init", dir); code != 1 {
		t.Errorf("expected second init to fail")
	}

	code, stdout, stderr = runCLI(t, "build", dir)
	if code != 0 {
		t.Fatalf("build failed (%d): %s", code, stderr)
	}
	if !strings.Contains(stdout, "1 file(s) transpiled, 0 up to date") {
		t.Errorf("unexpected build output: %s", stdout)
	}
	data, err := os.ReadFile(filepath.Join(dir, "out", "main.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "console.log(greeting);") {
		t.Errorf("unexpected build output:\n%s", data)
	}

	_, stdout, _ = runCLI(t, "build", dir)
	if !strings.Contains(stdout, "0 file(s) transpiled, 1 up to date") {
		t.Errorf("expected cached rebuild, got: %s", stdout)
	}

	writeFile(t, filepath.Join(dir, "src", "bad.ts"), "switch (x) {}")
	code, _, stderr = runCLI(t, "build", "-no-cache", dir)
	if code != 1 || !strings.Contains(stderr, "1 of 2 file(s) had errors") {
		t.Errorf("expected build failure summary, got %d: %s", code, stderr)
	}
}

func TestParseCommands(t *testing.T) {
	dir := t.TempDir()
	ts := filepath.Join(dir, "a.ts")
	writeFile(t, ts, "let a = 1;")
	rs := filepath.Join(dir, "a.rs")
	writeFile(t, rs, "fn main() {\n    let mut a = 1;\n}\n")

	code, stdout, _ := runCLI(t, "parse-ts", ts)
	if code != 0 || !strings.Contains(stdout, "let declaration") {
		t.Errorf("unexpected parse-ts output (%d):\n%s", code, stdout)
	}

	code, stdout, _ = runCLI(t, "parse-ts", "-tokens", ts)
	if code != 0 || !strings.Contains(stdout, "=== Tokens ===") {
		t.Errorf("unexpected token output (%d):\n%s", code, stdout)
	}

	code, stdout, _ = runCLI(t, "parse-rs", rs)
	if code != 0 || stdout == "" {
		t.Errorf("unexpected parse-rs output (%d):\n%s", code, stdout)
	}

	writeFile(t, rs, "struct A;")
	if code, _, stderr := runCLI(t, "parse-rs", rs); code != 1 || !strings.Contains(stderr, "expected item") {
		t.Errorf("expected parse-rs failure, got %d: %s", code, stderr)
	}

	if code, _, stderr := runCLI(t, "parse-ts"); code != 1 || !strings.Contains(stderr, "no input file") {
		t.Errorf("expected missing input error, got %d: %s", code, stderr)
	}
}
