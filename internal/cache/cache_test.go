package cache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLookupStore(t *testing.T) {
	cm, err := NewCacheManager(t.TempDir())
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	src := []byte("let a = 1;")
	if _, ok := cm.Lookup("a.ts", src, "fp"); ok {
		t.Errorf("expected miss on empty cache")
	}
	if err := cm.Store("a.ts", src, "fp", "let a = 1;\n"); err != nil {
		t.Fatalf("store: %v", err)
	}

	out, ok := cm.Lookup("a.ts", src, "fp")
	if !ok || out != "let a = 1;\n" {
		t.Errorf("expected hit with stored output, got %q %v", out, ok)
	}
	if _, ok := cm.Lookup("a.ts", src, "other"); ok {
		t.Errorf("expected miss on changed fingerprint")
	}
	// 指纹不一致时条目已失效
	if _, ok := cm.Lookup("a.ts", src, "fp"); ok {
		t.Errorf("expected entry to be dropped after mismatch")
	}

	if err := cm.Store("a.ts", src, "fp", "x"); err != nil {
		t.Fatalf("store: %v", err)
	}
	if _, ok := cm.Lookup("a.ts", []byte("let a = 2;"), "fp"); ok {
		t.Errorf("expected miss on changed content")
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	cm, err := NewCacheManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := cm.Store("a.ts", []byte("x"), "fp", "out"); err != nil {
		t.Fatal(err)
	}
	if err := cm.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := NewCacheManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	if out, ok := reopened.Lookup("a.ts", []byte("x"), "fp"); !ok || out != "out" {
		t.Errorf("expected persisted entry, got %q %v", out, ok)
	}
	if s := reopened.Stats(); s.TotalEntries != 1 || s.TotalSize != 3 {
		t.Errorf("unexpected stats: %+v", s)
	}
}

func TestVersionMismatchClears(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "0011223344556677_0011223344556677.rs")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	index := `{"version":"0","entries":{"a.ts":{"source_path":"a.ts","hash":"h","cache_file":"` +
		filepath.ToSlash(stale) + `","size":3}},"total_size":3}`
	if err := os.WriteFile(filepath.Join(dir, IndexFile), []byte(index), 0644); err != nil {
		t.Fatal(err)
	}

	cm, err := NewCacheManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	if s := cm.Stats(); s.TotalEntries != 0 {
		t.Errorf("expected empty cache after version mismatch, got %d entries", s.TotalEntries)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("expected stale cache file to be removed")
	}
}

func TestInvalidateAndDisable(t *testing.T) {
	cm, err := NewCacheManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cm.Store("a.ts", []byte("x"), "fp", "out")
	cm.Invalidate("a.ts")
	if _, ok := cm.Lookup("a.ts", []byte("x"), "fp"); ok {
		t.Errorf("expected miss after invalidate")
	}

	cm.Disable()
	cm.Store("b.ts", []byte("y"), "fp", "out")
	cm.Enable()
	if _, ok := cm.Lookup("b.ts", []byte("y"), "fp"); ok {
		t.Errorf("expected disabled cache not to store")
	}
}

func TestConcurrentAccess(t *testing.T) {
	cm, err := NewCacheManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := filepath.Join("src", string(rune('a'+i))+".ts")
			src := []byte{byte(i)}
			if err := cm.Store(name, src, "fp", name); err != nil {
				t.Errorf("store %s: %v", name, err)
				return
			}
			if out, ok := cm.Lookup(name, src, "fp"); !ok || out != name {
				t.Errorf("expected hit for %s, got %q %v", name, out, ok)
			}
		}(i)
	}
	wg.Wait()

	if s := cm.Stats(); s.TotalEntries != 8 {
		t.Errorf("expected 8 entries, got %d", s.TotalEntries)
	}
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("ab"), "c")
	if len(a) != 64 {
		t.Errorf("expected 256-bit hex hash, got %d chars", len(a))
	}
	if a == ContentHash([]byte("a"), "bc") {
		t.Errorf("expected separator between source and fingerprint")
	}
	if a != ContentHash([]byte("ab"), "c") {
		t.Errorf("expected stable hash")
	}
}
