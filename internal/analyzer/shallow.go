package analyzer

import (
	"bytes"
	"context"

	"github.com/mnemo-dev/mnemo/internal/scanner"
)

// ShallowAnalyzer is the minimal-but-valid analyzer used for languages that
// do not yet have a structured implementation. It succeeds unconditionally
// and reports only a line count.
type ShallowAnalyzer struct {
	lang scanner.Language
}

// NewShallowAnalyzer creates a shallow analyzer for one language.
func NewShallowAnalyzer(lang scanner.Language) *ShallowAnalyzer {
	return &ShallowAnalyzer{lang: lang}
}

func (a *ShallowAnalyzer) Language() scanner.Language {
	return a.lang
}

func (a *ShallowAnalyzer) Parse(_ context.Context, _ string, content []byte) (*StructuralRecord, error) {
	return &StructuralRecord{
		Language:  a.lang,
		Success:   true,
		LineCount: countLines(content),
	}, nil
}

// FallbackAnalyzer handles files whose extension maps to no recognized
// language. Same minimal contract as the shallow analyzers.
type FallbackAnalyzer struct{}

// NewFallbackAnalyzer creates the universal fallback analyzer.
func NewFallbackAnalyzer() *FallbackAnalyzer {
	return &FallbackAnalyzer{}
}

func (a *FallbackAnalyzer) Language() scanner.Language {
	return scanner.LangUnknown
}

func (a *FallbackAnalyzer) Parse(_ context.Context, _ string, content []byte) (*StructuralRecord, error) {
	return &StructuralRecord{
		Language:  scanner.LangUnknown,
		Success:   true,
		LineCount: countLines(content),
	}, nil
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	lines := bytes.Count(content, []byte("\n"))
	if content[len(content)-1] != '\n' {
		lines++
	}
	return lines
}
