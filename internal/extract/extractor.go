// Package extract drives the language analyzers over the file inventory,
// producing exactly one structural record per inventoried file regardless
// of per-file outcome.
package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mnemo-dev/mnemo/internal/analyzer"
	"github.com/mnemo-dev/mnemo/internal/scanner"
)

const defaultMemoCapacity = 512

// Extractor resolves the analyzer for each file and invokes it. Successful
// records are memoized by content hash so re-analysis of unchanged files
// skips the parse.
type Extractor struct {
	registry *analyzer.Registry
	memo     *lru.Cache[string, analyzer.StructuralRecord]
	log      *slog.Logger
}

// New creates an extractor. memoCapacity <= 0 selects the default.
func New(registry *analyzer.Registry, memoCapacity int, log *slog.Logger) *Extractor {
	if memoCapacity <= 0 {
		memoCapacity = defaultMemoCapacity
	}
	if log == nil {
		log = slog.Default()
	}
	memo, _ := lru.New[string, analyzer.StructuralRecord](memoCapacity)
	return &Extractor{registry: registry, memo: memo, log: log}
}

// Extract produces one StructuralRecord per FileRecord. A single-file
// failure becomes a Success=false record; the run never aborts, so the
// output always has the same length as the input.
func (e *Extractor) Extract(ctx context.Context, files []scanner.FileRecord) []analyzer.StructuralRecord {
	records := make([]analyzer.StructuralRecord, 0, len(files))
	for _, file := range files {
		records = append(records, e.extractOne(ctx, file))
	}
	return records
}

func (e *Extractor) extractOne(ctx context.Context, file scanner.FileRecord) analyzer.StructuralRecord {
	content, err := os.ReadFile(file.Path)
	if err != nil {
		return failureRecord(file, err.Error())
	}

	key := memoKey(file.Language, content)
	if rec, ok := e.memo.Get(key); ok {
		rec.Path = file.Path
		return rec
	}

	a := e.registry.ForLanguage(file.Language)
	rec, err := a.Parse(ctx, file.Path, content)
	if err != nil {
		e.log.Debug("parse failed", "file", file.Path, "error", err)
		return failureRecord(file, err.Error())
	}

	rec.Path = file.Path
	if rec.LineCount == 0 {
		rec.LineCount = file.Lines
	}
	if rec.Success {
		e.memo.Add(key, *rec)
	}
	return *rec
}

func failureRecord(file scanner.FileRecord, message string) analyzer.StructuralRecord {
	return analyzer.StructuralRecord{
		Path:     file.Path,
		Language: file.Language,
		Success:  false,
		Errors: []analyzer.ParseIssue{{
			Message:  message,
			Line:     1,
			Column:   1,
			Severity: "error",
		}},
		LineCount: file.Lines,
	}
}

func memoKey(lang scanner.Language, content []byte) string {
	sum := sha256.Sum256(content)
	return string(lang) + ":" + hex.EncodeToString(sum[:8])
}
