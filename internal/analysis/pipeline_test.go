package analysis

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mnemo-dev/mnemo/internal/analyzer"
	"github.com/mnemo-dev/mnemo/internal/extract"
	"github.com/mnemo-dev/mnemo/internal/relgraph"
	"github.com/mnemo-dev/mnemo/internal/scanner"
)

func newTestPipeline() *Pipeline {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewPipeline(
		scanner.New(12, log),
		extract.New(analyzer.NewDefaultRegistry(), 64, log),
		relgraph.NewBuilder(log),
		log,
	)
}

func TestRunProducesCompleteSnapshot(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"main.ts":    "import { helper } from './util';\nhelper();\n",
		"util.ts":    "export function helper(): number { return 1; }\n",
		"scratch.py": "def noop():\n    pass\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	snap, err := newTestPipeline().Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(snap.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(snap.Files))
	}
	if len(snap.Records) != len(snap.Files) {
		t.Fatalf("expected one record per file, got %d records for %d files",
			len(snap.Records), len(snap.Files))
	}
	if snap.Graph == nil || snap.Graph.EdgeCount() != 1 {
		t.Fatalf("expected the main -> util edge, got %+v", snap.Graph)
	}
	if snap.Languages[scanner.LangTypeScript] != 2 || snap.Languages[scanner.LangPython] != 1 {
		t.Fatalf("unexpected language counts: %v", snap.Languages)
	}
	if snap.Timestamp.IsZero() {
		t.Fatal("snapshot must carry its creation time")
	}
}

func TestTopLanguagesOrdersByCount(t *testing.T) {
	snap := &Snapshot{Languages: map[scanner.Language]int{
		scanner.LangPython:     1,
		scanner.LangTypeScript: 3,
		scanner.LangGo:         1,
	}}

	langs := snap.TopLanguages()
	want := []scanner.Language{scanner.LangTypeScript, scanner.LangGo, scanner.LangPython}
	for i := range want {
		if langs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, langs)
		}
	}
}

func TestParseFailuresCountsUnsuccessfulRecords(t *testing.T) {
	snap := &Snapshot{Records: []analyzer.StructuralRecord{
		{Path: "a", Success: true},
		{Path: "b", Success: false},
		{Path: "c", Success: false},
	}}
	if got := snap.ParseFailures(); got != 2 {
		t.Fatalf("expected 2 failures, got %d", got)
	}
}

func TestRunFailsOnUnscannableRoot(t *testing.T) {
	if _, err := newTestPipeline().Run(context.Background(), "bad\x00path"); err == nil {
		t.Fatal("expected scan failure to abort the run")
	}
}
