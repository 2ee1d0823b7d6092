package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tangzhangming/tsrs/internal/cache"
	"github.com/tangzhangming/tsrs/internal/transpiler"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func project(t *testing.T, files map[string]string) (src, out string) {
	t.Helper()
	root := t.TempDir()
	src, out = filepath.Join(root, "src"), filepath.Join(root, "out")
	for name, content := range files {
		writeFile(t, filepath.Join(src, name), content)
	}
	return src, out
}

func TestCollect(t *testing.T) {
	src, out := project(t, map[string]string{
		"a.ts":         "",
		"lib/b.js":     "",
		"types.d.ts":   "",
		"notes.md":     "",
		".hidden/c.ts": "",
	})

	jobs, err := Collect(src, out)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	got := map[string]string{}
	for _, j := range jobs {
		rel, _ := filepath.Rel(src, j.Input)
		got[filepath.ToSlash(rel)] = j.Output
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 jobs, got %v", got)
	}
	if got["a.ts"] != filepath.Join(out, "a.rs") || got["lib/b.js"] != filepath.Join(out, "lib", "b.rs") {
		t.Errorf("unexpected outputs: %v", got)
	}
}

func TestRunAggregatesErrors(t *testing.T) {
	src, out := project(t, map[string]string{
		"ok.ts":     "let a = 1;",
		"bad1.ts":   "switch (x) {}",
		"bad2.ts":   "let x = `t`;",
		"syntax.ts": "let = ;",
	})
	jobs, err := Collect(src, out)
	if err != nil {
		t.Fatal(err)
	}

	stats, err := Run(context.Background(), jobs, Options{Workers: 2, Logger: zap.NewNop()})
	if stats.Total != 4 || stats.Transpiled != 1 || stats.Failed != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), err)
	}
	if !errors.Is(err, transpiler.ErrUnsupported) {
		t.Errorf("expected unsupported error in %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("expected parse error in %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "ok.rs")); err != nil {
		t.Errorf("expected ok.rs to be written: %v", err)
	}
	for _, name := range []string{"bad1.rs", "bad2.rs", "syntax.rs"} {
		if _, err := os.Stat(filepath.Join(out, name)); !os.IsNotExist(err) {
			t.Errorf("expected %s not to be written", name)
		}
	}

	diags := Diagnostics(err)
	if len(diags) < 3 {
		t.Errorf("expected at least 3 diagnostics, got %d", len(diags))
	}
	for _, d := range diags {
		if d.Code == "" || d.File == "" {
			t.Errorf("expected code and file on diagnostic, got %+v", d)
		}
	}
}

func TestRunUsesCache(t *testing.T) {
	src, out := project(t, map[string]string{"a.ts": "let a = 1;", "b.ts": "const b = 2;"})
	jobs, _ := Collect(src, out)
	cm, err := cache.NewCacheManager(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cm}

	if stats, err := Run(context.Background(), jobs, opts); err != nil || stats.Transpiled != 2 {
		t.Fatalf("first run: %+v %v", stats, err)
	}
	stats, err := Run(context.Background(), jobs, opts)
	if err != nil || stats.Cached != 2 || stats.Transpiled != 0 {
		t.Errorf("expected all cached on second run, got %+v %v", stats, err)
	}

	// 选项变化使缓存失效
	opts.Transpile = &transpiler.Options{NumberMode: transpiler.NumberFloat}
	stats, err = Run(context.Background(), jobs, opts)
	if err != nil || stats.Transpiled != 2 {
		t.Errorf("expected re-transpile after option change, got %+v %v", stats, err)
	}
	data, _ := os.ReadFile(filepath.Join(out, "a.rs"))
	if !strings.Contains(string(data), "let mut a = 1.0;") {
		t.Errorf("expected float output, got:\n%s", data)
	}
}

func TestRunCancelled(t *testing.T) {
	src, out := project(t, map[string]string{"a.ts": "let a = 1;"})
	jobs, _ := Collect(src, out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := Run(ctx, jobs, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if stats.Transpiled != 0 {
		t.Errorf("expected no work after cancel, got %+v", stats)
	}
}

func TestTranspileSource(t *testing.T) {
	out, err := TranspileSource("console.log(\"hi\");", "a.ts", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "    console.log(\"hi\");\n") {
		t.Errorf("unexpected output:\n%s", out)
	}

	_, err = TranspileSource("let x = ;", "a.ts", nil, nil)
	var pe *ParseError
	if !errors.As(err, &pe) || len(pe.Errors) == 0 {
		t.Fatalf("expected parse error, got %v", err)
	}
	if !strings.Contains(pe.Error(), "a.ts") {
		t.Errorf("expected filename in %q", pe.Error())
	}
}
