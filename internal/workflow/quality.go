package workflow

import (
	"fmt"
	"strings"

	"github.com/mnemo-dev/mnemo/internal/analysis"
)

var toneVocabulary = []string{
	"architecture", "component", "module", "interface", "implementation",
	"design", "pattern", "dependency", "integration", "structure",
	"maintainab", "scalab", "abstraction", "separation",
}

var businessVocabulary = []string{
	"user", "customer", "value", "goal", "requirement", "stakeholder",
	"workflow", "product", "feature", "roadmap", "capability", "outcome",
}

// ScoreResponses computes the five quality dimensions over the combined
// responses. Each dimension is a 0-100 proxy, not a semantic judgment;
// Overall is the unweighted mean.
func ScoreResponses(snap *analysis.Snapshot, responses ResponseSet) QualityMetrics {
	slots := responses.bySlot()
	combined := strings.ToLower(allResponses(slots))

	m := QualityMetrics{
		Specificity:     scoreSpecificity(snap, combined),
		Tone:            scoreVocabulary(combined, toneVocabulary, 8),
		BusinessContext: scoreVocabulary(combined, businessVocabulary, 8),
		TechnicalDepth:  scoreTechnicalDepth(combined),
		Coherence:       scoreCoherence(slots),
	}
	m.Overall = (m.Specificity + m.Tone + m.BusinessContext + m.TechnicalDepth + m.Coherence) / 5
	return m
}

func allResponses(slots map[string]string) string {
	parts := make([]string, 0, len(SlotOrder))
	for _, slot := range SlotOrder {
		parts = append(parts, slots[slot])
	}
	return strings.Join(parts, "\n")
}

// scoreSpecificity measures how many concrete file and symbol names from
// the snapshot the responses actually reference.
func scoreSpecificity(snap *analysis.Snapshot, combined string) int {
	hits := 0
	for _, token := range specificityTokens(snap) {
		if strings.Contains(combined, strings.ToLower(token)) {
			hits++
		}
	}
	return clampScore(hits * 10)
}

func scoreVocabulary(combined string, vocabulary []string, weight int) int {
	hits := 0
	for _, word := range vocabulary {
		hits += strings.Count(combined, word)
	}
	return clampScore(hits * weight)
}

// scoreTechnicalDepth is a proxy: counts code-shaped tokens such as inline
// code spans, call parentheses, and path separators.
func scoreTechnicalDepth(combined string) int {
	hits := strings.Count(combined, "`")/2 +
		strings.Count(combined, "()") +
		strings.Count(combined, "/") +
		strings.Count(combined, ".ts") +
		strings.Count(combined, ".js")
	return clampScore(hits * 5)
}

// scoreCoherence is a proxy: a slot reads as coherent prose when it holds
// at least three sentences.
func scoreCoherence(slots map[string]string) int {
	structured := 0
	for _, slot := range SlotOrder {
		if strings.Count(slots[slot], ".") >= 3 {
			structured++
		}
	}
	return structured * 100 / len(SlotOrder)
}

func clampScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// enhancementRequests itemizes, per weak dimension, what an improved
// response set must add. The caller re-drives generation with these.
func enhancementRequests(m QualityMetrics, threshold int) []string {
	requests := make([]string, 0)

	if m.Specificity < threshold {
		requests = append(requests, fmt.Sprintf(
			"specificity %d/100: reference concrete files, functions, and paths from the analysis by name", m.Specificity))
	}
	if m.Tone < threshold {
		requests = append(requests, fmt.Sprintf(
			"tone %d/100: use precise architectural vocabulary (components, interfaces, dependencies) instead of generic description", m.Tone))
	}
	if m.BusinessContext < threshold {
		requests = append(requests, fmt.Sprintf(
			"business context %d/100: connect the structure to user goals, requirements, and product outcomes", m.BusinessContext))
	}
	if m.TechnicalDepth < threshold {
		requests = append(requests, fmt.Sprintf(
			"technical depth %d/100: include code-level detail such as inline code spans and concrete call sites", m.TechnicalDepth))
	}
	if m.Coherence < threshold {
		requests = append(requests, fmt.Sprintf(
			"coherence %d/100: expand each section into full prose of at least three sentences", m.Coherence))
	}

	if len(requests) == 0 {
		requests = append(requests, fmt.Sprintf(
			"overall %d/100 is below the quality threshold; strengthen every section with more concrete, well-structured detail", m.Overall))
	}
	return requests
}
