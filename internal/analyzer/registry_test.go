package analyzer

import (
	"context"
	"testing"

	"github.com/mnemo-dev/mnemo/internal/scanner"
)

func TestShallowAnalyzerReportsLineCountOnly(t *testing.T) {
	rec, err := NewShallowAnalyzer(scanner.LangGo).Parse(context.Background(), "main.go", []byte("package main\n\nfunc main() {}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !rec.Success {
		t.Fatal("shallow analyzer must succeed")
	}
	if rec.LineCount != 3 {
		t.Fatalf("expected 3 lines, got %d", rec.LineCount)
	}
	if len(rec.Functions) != 0 || len(rec.Imports) != 0 {
		t.Fatal("shallow analyzer must not extract structure")
	}
}

func TestRegistryFallsBackForUnknownLanguage(t *testing.T) {
	r := NewDefaultRegistry()
	a := r.ForLanguage(scanner.LangUnknown)
	if a.Language() != scanner.LangUnknown {
		t.Fatalf("expected fallback analyzer, got %s", a.Language())
	}

	rec, err := a.Parse(context.Background(), "notes.txt", []byte("one\ntwo"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.LineCount != 2 {
		t.Fatalf("expected 2 lines, got %d", rec.LineCount)
	}
}

func TestDefaultRegistryRoutesJavaScriptToStructuredAnalyzer(t *testing.T) {
	r := NewDefaultRegistry()
	a := r.ForLanguage(scanner.LangJavaScript)
	if _, ok := a.(*TypeScriptAnalyzer); !ok {
		t.Fatalf("expected structured analyzer for javascript, got %T", a)
	}
}

func TestRegisterReplacesAnalyzer(t *testing.T) {
	r := NewRegistry()
	r.Register(NewShallowAnalyzer(scanner.LangPython))
	before := r.Languages()
	r.Register(NewShallowAnalyzer(scanner.LangPython))
	if r.Languages() != before {
		t.Fatal("re-registering a language must not grow the registry")
	}
}
