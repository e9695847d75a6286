package workflow

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemo-dev/mnemo/internal/analysis"
	"github.com/mnemo-dev/mnemo/internal/analyzer"
	"github.com/mnemo-dev/mnemo/internal/relgraph"
	"github.com/mnemo-dev/mnemo/internal/scanner"
)

func fixtureSnapshot() *analysis.Snapshot {
	return &analysis.Snapshot{
		Root: "/tmp/shop",
		Files: []scanner.FileRecord{
			{Path: "/tmp/shop/src/checkout.ts", Language: scanner.LangTypeScript, Lines: 40},
			{Path: "/tmp/shop/src/inventory.ts", Language: scanner.LangTypeScript, Lines: 30},
			{Path: "/tmp/shop/README.md", Language: scanner.LangUnknown, Lines: 10},
		},
		Records: []analyzer.StructuralRecord{
			{
				Path:     "/tmp/shop/src/checkout.ts",
				Language: scanner.LangTypeScript,
				Success:  true,
				Functions: []analyzer.FunctionInfo{
					{Name: "processPayment", Exported: true},
				},
				Imports: []analyzer.ImportInfo{
					{Module: "react", External: true},
					{Module: "./inventory"},
				},
			},
			{
				Path:     "/tmp/shop/src/inventory.ts",
				Language: scanner.LangTypeScript,
				Success:  true,
				Classes: []analyzer.ClassInfo{
					{Name: "InventoryStore", Exported: true},
				},
			},
		},
		Graph: relgraph.NewGraph(),
		Languages: map[scanner.Language]int{
			scanner.LangTypeScript: 2,
			scanner.LangUnknown:    1,
		},
		Timestamp: time.Now(),
	}
}

func TestScoreSpecificityCountsSnapshotTokens(t *testing.T) {
	snap := fixtureSnapshot()

	weak := ScoreResponses(snap, uniformResponses("Nothing concrete here. At all. Ever. Done."))
	strong := ScoreResponses(snap, uniformResponses(
		"checkout.ts calls processPayment and InventoryStore keeps inventory.ts state. Done. Really."))

	assert.Zero(t, weak.Specificity)
	// Four distinct tokens referenced, ten points each.
	assert.Equal(t, 40, strong.Specificity)
	assert.Greater(t, strong.Overall, weak.Overall)
}

func TestScoreCoherenceCountsStructuredSlots(t *testing.T) {
	snap := fixtureSnapshot()

	responses := uniformResponses("One sentence only")
	responses.Brief = "First sentence. Second sentence. Third sentence."
	responses.Progress = "First. Second. Third. Fourth."

	m := ScoreResponses(snap, responses)
	// Two of six slots hold three or more sentences.
	assert.Equal(t, 33, m.Coherence)
}

func TestScoresAreClamped(t *testing.T) {
	snap := fixtureSnapshot()

	dense := strings.Repeat("architecture pattern component interface dependency ", 20)
	m := ScoreResponses(snap, uniformResponses(dense))

	assert.Equal(t, 100, m.Tone)
	assert.LessOrEqual(t, m.Overall, 100)
	assert.GreaterOrEqual(t, m.Overall, 0)
}

func TestOverallIsUnweightedMean(t *testing.T) {
	snap := fixtureSnapshot()
	m := ScoreResponses(snap, validResponses())

	want := (m.Specificity + m.Tone + m.BusinessContext + m.TechnicalDepth + m.Coherence) / 5
	assert.Equal(t, want, m.Overall)
}

func TestEnhancementRequestsItemizeWeakDimensions(t *testing.T) {
	m := QualityMetrics{Specificity: 10, Tone: 90, BusinessContext: 90, TechnicalDepth: 90, Coherence: 50, Overall: 66}

	requests := enhancementRequests(m, 70)
	require.Len(t, requests, 2)
	assert.Contains(t, requests[0], "specificity 10/100")
	assert.Contains(t, requests[1], "coherence 50/100")
}

func TestEnhancementRequestsFallBackToGeneric(t *testing.T) {
	m := QualityMetrics{Specificity: 80, Tone: 80, BusinessContext: 80, TechnicalDepth: 80, Coherence: 80, Overall: 80}

	requests := enhancementRequests(m, 70)
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0], "overall 80/100")
}

func uniformResponses(body string) ResponseSet {
	return ResponseSet{
		Brief:          body,
		ProductContext: body,
		ActiveContext:  body,
		SystemPatterns: body,
		TechContext:    body,
		Progress:       body,
	}
}
