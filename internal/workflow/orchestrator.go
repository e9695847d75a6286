package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mnemo-dev/mnemo/internal/analysis"
	"github.com/mnemo-dev/mnemo/internal/sanitize"
	"github.com/mnemo-dev/mnemo/internal/snapcache"
)

// ArtifactWriter persists a content map into a destination directory and
// returns the written file names. The core stays agnostic to where and how
// files land.
type ArtifactWriter interface {
	WriteAll(dir string, content map[string]string) ([]string, error)
}

// Orchestrator owns the pipeline, the snapshot cache, and the quality gate
// configuration for both phases.
type Orchestrator struct {
	pipeline *analysis.Pipeline
	cache    *snapcache.Cache
	writer   ArtifactWriter

	minResponseLen int
	threshold      int
	outputDir      string
	log            *slog.Logger
}

// New wires an orchestrator. The cache is injected, never global.
func New(pipeline *analysis.Pipeline, cache *snapcache.Cache, writer ArtifactWriter, minResponseLen, threshold int, outputDir string, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		pipeline:       pipeline,
		cache:          cache,
		writer:         writer,
		minResponseLen: minResponseLen,
		threshold:      threshold,
		outputDir:      outputDir,
		log:            log,
	}
}

// Analyze is Phase 1: run the full pipeline, cache the snapshot, and build
// the prompt set. Failure here aborts before any cache entry is created.
func (o *Orchestrator) Analyze(ctx context.Context, projectPath string) (*AnalyzeResult, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProject, projectPath)
	}

	snap, err := o.pipeline.Run(ctx, projectPath)
	if err != nil {
		return nil, err
	}

	key, expires := o.cache.Store(snap)
	o.log.Info("snapshot cached", "analysis_id", key, "ttl", o.cache.TTL())

	return &AnalyzeResult{
		AnalysisID: key,
		Status:     StatusPromptsReady,
		Prompts:    BuildPromptSet(snap),
		ExpiresAt:  expires,
	}, nil
}

// Synthesize is Phase 2: retrieve the snapshot, validate and score the
// responses, and either commit artifacts (deleting the snapshot) or return
// a needs-enhancement result (keeping it for a retry).
func (o *Orchestrator) Synthesize(analysisID string, responses ResponseSet) (*SynthesisResult, error) {
	snap, err := o.cache.Retrieve(analysisID)
	if err != nil {
		// Terminal for this invocation: the caller restarts from Phase 1.
		return nil, fmt.Errorf("analysis %s unavailable, restart from analyze: %w", analysisID, err)
	}

	if missing := validateResponses(responses, o.minResponseLen); len(missing) > 0 {
		return nil, &ValidationError{Slots: missing}
	}

	metrics := ScoreResponses(snap, responses)
	if metrics.Overall < o.threshold {
		o.log.Info("quality gate failed",
			"analysis_id", analysisID,
			"overall", metrics.Overall,
			"threshold", o.threshold)
		return &SynthesisResult{
			Status:       StatusNeedsEnhancement,
			Metrics:      metrics,
			Enhancements: enhancementRequests(metrics, o.threshold),
		}, nil
	}

	content := make(map[string]string, len(SlotOrder))
	for slot, body := range responses.bySlot() {
		content[slotFiles[slot]] = sanitize.Markdown(body)
	}
	artifacts, err := o.writer.WriteAll(o.outputDir, content)
	if err != nil {
		return nil, fmt.Errorf("failed to write artifacts: %w", err)
	}

	// One-shot commit: the snapshot is deleted only on success.
	o.cache.Clear(analysisID)
	o.log.Info("synthesis complete", "analysis_id", analysisID, "artifacts", len(artifacts))

	return &SynthesisResult{
		Status:    StatusComplete,
		Artifacts: artifacts,
		Metrics:   metrics,
	}, nil
}

// validateResponses returns the slots that are absent or shorter than the
// minimum, in canonical order.
func validateResponses(responses ResponseSet, minLen int) []string {
	slots := responses.bySlot()
	missing := make([]string, 0)
	for _, slot := range SlotOrder {
		if len(strings.TrimSpace(slots[slot])) < minLen {
			missing = append(missing, slot)
		}
	}
	return missing
}
