package workflow

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-dev/mnemo/internal/analysis"
	"github.com/mnemo-dev/mnemo/internal/analyzer"
	"github.com/mnemo-dev/mnemo/internal/extract"
	"github.com/mnemo-dev/mnemo/internal/relgraph"
	"github.com/mnemo-dev/mnemo/internal/scanner"
	"github.com/mnemo-dev/mnemo/internal/snapcache"
)

type fakeWriter struct {
	dir     string
	content map[string]string
	err     error
}

func (w *fakeWriter) WriteAll(dir string, content map[string]string) ([]string, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.dir = dir
	w.content = content
	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	return names, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"main.ts": "import { run } from './service';\nrun();\n",
		"service.ts": "import { helper } from './util';\n" +
			"export async function run(): Promise<void> { helper(); }\n",
		"util.ts": "export function helper(): number { return 1; }\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func newTestOrchestrator(t *testing.T, threshold int, writer ArtifactWriter) (*Orchestrator, *snapcache.Cache) {
	t.Helper()
	log := testLogger()
	pipeline := analysis.NewPipeline(
		scanner.New(12, log),
		extract.New(analyzer.NewDefaultRegistry(), 64, log),
		relgraph.NewBuilder(log),
		log,
	)
	cache := snapcache.New(30*time.Minute, 100)
	return New(pipeline, cache, writer, 20, threshold, "memory-bank", log), cache
}

func validResponses() ResponseSet {
	body := "The service module wires main.ts to util.ts through `run()`. " +
		"This architecture keeps each component and interface separated. " +
		"Users benefit from the product's clear workflow and requirements."
	return ResponseSet{
		Brief:          body,
		ProductContext: body,
		ActiveContext:  body,
		SystemPatterns: body,
		TechContext:    body,
		Progress:       body,
	}
}

func TestAnalyzeRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	orch, _ := newTestOrchestrator(t, 70, &fakeWriter{})

	_, err := orch.Analyze(context.Background(), file)
	assert.ErrorIs(t, err, ErrInvalidProject)

	_, err = orch.Analyze(context.Background(), filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrInvalidProject)
}

func TestAnalyzeCachesSnapshotAndBuildsPrompts(t *testing.T) {
	orch, cache := newTestOrchestrator(t, 70, &fakeWriter{})

	res, err := orch.Analyze(context.Background(), writeProject(t))
	require.NoError(t, err)

	assert.Equal(t, StatusPromptsReady, res.Status)
	assert.NotEmpty(t, res.AnalysisID)
	assert.True(t, cache.Exists(res.AnalysisID), "snapshot must stay cached for Phase 2")
	assert.True(t, res.ExpiresAt.After(time.Now()))

	for _, prompt := range []string{
		res.Prompts.Brief, res.Prompts.ProductContext, res.Prompts.ActiveContext,
		res.Prompts.SystemPatterns, res.Prompts.TechContext, res.Prompts.Progress,
	} {
		assert.NotEmpty(t, prompt)
		assert.Contains(t, prompt, "typescript", "prompts embed the structural summary")
	}
}

func TestSynthesizeUnknownAnalysisID(t *testing.T) {
	orch, _ := newTestOrchestrator(t, 70, &fakeWriter{})

	_, err := orch.Synthesize("bogus-id", validResponses())
	require.Error(t, err)
	assert.ErrorIs(t, err, snapcache.ErrNotFound)
	assert.Contains(t, err.Error(), "restart from analyze")
}

func TestSynthesizeValidationFailureKeepsSnapshot(t *testing.T) {
	orch, cache := newTestOrchestrator(t, 70, &fakeWriter{})

	res, err := orch.Analyze(context.Background(), writeProject(t))
	require.NoError(t, err)

	responses := validResponses()
	responses.TechContext = "too short"
	responses.Progress = "   "

	_, err = orch.Synthesize(res.AnalysisID, responses)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{SlotTechContext, SlotProgress}, verr.Slots)
	assert.True(t, cache.Exists(res.AnalysisID), "validation failure must not consume the snapshot")
}

func TestSynthesizeBelowThresholdRequestsEnhancement(t *testing.T) {
	orch, cache := newTestOrchestrator(t, 100, &fakeWriter{})

	res, err := orch.Analyze(context.Background(), writeProject(t))
	require.NoError(t, err)

	out, err := orch.Synthesize(res.AnalysisID, validResponses())
	require.NoError(t, err)

	assert.Equal(t, StatusNeedsEnhancement, out.Status)
	assert.Empty(t, out.Artifacts)
	assert.NotEmpty(t, out.Enhancements)
	assert.True(t, cache.Exists(res.AnalysisID), "snapshot must survive for the retry")
}

func TestSynthesizeCommitsArtifactsAndConsumesSnapshot(t *testing.T) {
	writer := &fakeWriter{}
	orch, cache := newTestOrchestrator(t, 0, writer)

	res, err := orch.Analyze(context.Background(), writeProject(t))
	require.NoError(t, err)

	responses := validResponses()
	responses.Brief += "\n<script>alert('x')</script>\n"

	out, err := orch.Synthesize(res.AnalysisID, responses)
	require.NoError(t, err)

	assert.Equal(t, StatusComplete, out.Status)
	assert.Len(t, out.Artifacts, 6)
	assert.Equal(t, "memory-bank", writer.dir)

	for _, name := range []string{
		"projectbrief.md", "productContext.md", "activeContext.md",
		"systemPatterns.md", "techContext.md", "progress.md",
	} {
		assert.Contains(t, writer.content, name)
	}
	assert.NotContains(t, writer.content["projectbrief.md"], "<script>")

	assert.False(t, cache.Exists(res.AnalysisID), "commit consumes the snapshot")

	_, err = orch.Synthesize(res.AnalysisID, responses)
	assert.ErrorIs(t, err, snapcache.ErrNotFound)
}
