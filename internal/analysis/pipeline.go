// Package analysis composes the scanner, extractor, and graph builder into
// the full pipeline and defines the snapshot the two-phase workflow caches.
package analysis

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/mnemo-dev/mnemo/internal/analyzer"
	"github.com/mnemo-dev/mnemo/internal/extract"
	"github.com/mnemo-dev/mnemo/internal/relgraph"
	"github.com/mnemo-dev/mnemo/internal/scanner"
)

// Snapshot is the complete structural and relational result for one
// project root at one point in time.
type Snapshot struct {
	Root      string
	Files     []scanner.FileRecord
	Records   []analyzer.StructuralRecord
	Graph     *relgraph.Graph
	Languages map[scanner.Language]int
	Timestamp time.Time
}

// Pipeline runs scan, extraction, and graph construction in order.
type Pipeline struct {
	scanner   *scanner.Scanner
	extractor *extract.Extractor
	builder   *relgraph.Builder
	log       *slog.Logger
}

// NewPipeline wires the three stages together.
func NewPipeline(sc *scanner.Scanner, ex *extract.Extractor, b *relgraph.Builder, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{scanner: sc, extractor: ex, builder: b, log: log}
}

// Run produces a snapshot for a project root. Per-file parse failures are
// captured in the records; only a scan-level failure aborts.
func (p *Pipeline) Run(ctx context.Context, root string) (*Snapshot, error) {
	start := time.Now()

	files, err := p.scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	records := p.extractor.Extract(ctx, files)
	graph := p.builder.Build(records)

	languages := make(map[scanner.Language]int)
	for _, f := range files {
		languages[f.Language]++
	}

	p.log.Info("analysis complete",
		"root", root,
		"files", len(files),
		"nodes", len(graph.Nodes),
		"edges", graph.EdgeCount(),
		"elapsed", time.Since(start))

	return &Snapshot{
		Root:      root,
		Files:     files,
		Records:   records,
		Graph:     graph,
		Languages: languages,
		Timestamp: time.Now(),
	}, nil
}

// TopLanguages returns the snapshot's languages ordered by file count.
func (s *Snapshot) TopLanguages() []scanner.Language {
	langs := make([]scanner.Language, 0, len(s.Languages))
	for lang := range s.Languages {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if s.Languages[langs[i]] != s.Languages[langs[j]] {
			return s.Languages[langs[i]] > s.Languages[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs
}

// ParseFailures counts records whose parse did not succeed.
func (s *Snapshot) ParseFailures() int {
	failures := 0
	for _, rec := range s.Records {
		if !rec.Success {
			failures++
		}
	}
	return failures
}
