// Package analyzer holds the pluggable per-language structural analyzers
// and the registry that routes a detected language to one of them.
//
// Only TypeScript/JavaScript has a structured, AST-backed analyzer today.
// Every other recognized language routes to a shallow analyzer that records
// a line count and nothing else; these are documented extension points, not
// finished behavior. Unknown languages route to the universal fallback.
package analyzer

import (
	"context"

	"github.com/mnemo-dev/mnemo/internal/scanner"
)

// Analyzer is the capability every language implementation provides.
type Analyzer interface {
	// Language returns the language tag this analyzer handles.
	Language() scanner.Language

	// Parse extracts a structural record from file content. A returned
	// error is captured by the extractor as a parse-error record; it never
	// aborts the overall run.
	Parse(ctx context.Context, path string, content []byte) (*StructuralRecord, error)
}

// Registry is a pure lookup from language tag to analyzer. It holds no
// mutable request state.
type Registry struct {
	analyzers map[scanner.Language]Analyzer
	fallback  Analyzer
}

// NewRegistry creates an empty registry with the universal fallback wired.
func NewRegistry() *Registry {
	return &Registry{
		analyzers: make(map[scanner.Language]Analyzer),
		fallback:  NewFallbackAnalyzer(),
	}
}

// Register adds an analyzer, replacing any previous one for its language.
func (r *Registry) Register(a Analyzer) {
	r.analyzers[a.Language()] = a
}

// ForLanguage returns the analyzer for a language, or the universal
// fallback when none is registered.
func (r *Registry) ForLanguage(lang scanner.Language) Analyzer {
	if a, ok := r.analyzers[lang]; ok {
		return a
	}
	return r.fallback
}

// Languages returns the number of registered analyzers.
func (r *Registry) Languages() int {
	return len(r.analyzers)
}

// NewDefaultRegistry creates a registry with all supported analyzers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	ts := NewTypeScriptAnalyzer()
	r.Register(ts)
	r.analyzers[scanner.LangJavaScript] = ts

	for _, lang := range []scanner.Language{
		scanner.LangGo,
		scanner.LangPython,
		scanner.LangRuby,
		scanner.LangJava,
		scanner.LangRust,
		scanner.LangC,
		scanner.LangCPP,
		scanner.LangCSharp,
		scanner.LangPHP,
	} {
		r.Register(NewShallowAnalyzer(lang))
	}

	return r
}
