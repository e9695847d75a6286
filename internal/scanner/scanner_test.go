package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestScanSkipsDenylistedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "dep", "index.js"), "module.exports = {}\n")
	writeFile(t, filepath.Join(root, "main.ts"), "const x = 1\nconst y = 2\n")

	records, err := New(10, nil).Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(records))
	}
	if records[0].Language != LangTypeScript {
		t.Fatalf("expected typescript, got %s", records[0].Language)
	}
	if records[0].Lines != 2 {
		t.Fatalf("expected 2 lines, got %d", records[0].Lines)
	}
}

func TestScanSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config"), "[core]\n")
	writeFile(t, filepath.Join(root, "app.py"), "print('hi')\n")

	records, err := New(10, nil).Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Language != LangPython {
		t.Fatalf("expected python, got %s", records[0].Language)
	}
}

func TestScanHonorsDepthBudget(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.ts"), "x\n")
	writeFile(t, filepath.Join(root, "a", "mid.ts"), "x\n")
	writeFile(t, filepath.Join(root, "a", "b", "deep.ts"), "x\n")

	records, err := New(1, nil).Scan(root)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records at depth 1, got %d", len(records))
	}
	for _, rec := range records {
		if filepath.Base(rec.Path) == "deep.ts" {
			t.Fatal("depth budget exceeded: deep.ts was inventoried")
		}
	}
}

func TestScanUnreadableRootIsEmpty(t *testing.T) {
	records, err := New(3, nil).Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("scan should not fail on unreadable directory: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty inventory, got %d records", len(records))
	}
}

func TestScanRejectsBadPath(t *testing.T) {
	if _, err := New(3, nil).Scan("bad\x00path"); err == nil {
		t.Fatal("expected error for path with NUL byte")
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]Language{
		"a.ts":     LangTypeScript,
		"a.tsx":    LangTypeScript,
		"a.js":     LangJavaScript,
		"a.mjs":    LangJavaScript,
		"a.go":     LangGo,
		"a.py":     LangPython,
		"a.rb":     LangRuby,
		"a.rs":     LangRust,
		"a.weird":  LangUnknown,
		"Makefile": LangUnknown,
		"a.CPP":    LangCPP,
	}
	for path, want := range cases {
		if got := DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestSkipDir(t *testing.T) {
	for _, name := range []string{"node_modules", "vendor", ".git", ".cache", "dist", "__pycache__"} {
		if !SkipDir(name) {
			t.Errorf("expected %q to be skipped", name)
		}
	}
	for _, name := range []string{"src", "internal", "lib"} {
		if SkipDir(name) {
			t.Errorf("expected %q to be scanned", name)
		}
	}
}
