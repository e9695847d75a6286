// Package workflow drives the two-phase synthesis: Phase 1 turns a project
// into an analysis snapshot plus a prompt set, an external caller produces
// responses, and Phase 2 validates, scores, and either commits artifacts or
// requests enhancement.
package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the workflow state machine.
type Status string

const (
	StatusPromptsReady     Status = "prompts-ready"
	StatusComplete         Status = "complete"
	StatusNeedsEnhancement Status = "needs-enhancement"
)

// ErrInvalidProject means the Phase 1 root is not a directory.
var ErrInvalidProject = errors.New("project root is not a directory")

// Slot names, in canonical order.
const (
	SlotBrief          = "brief"
	SlotProductContext = "product-context"
	SlotActiveContext  = "active-context"
	SlotSystemPatterns = "system-patterns"
	SlotTechContext    = "tech-context"
	SlotProgress       = "progress"
)

// SlotOrder is the fixed ordering of the six documentation slots.
var SlotOrder = []string{
	SlotBrief,
	SlotProductContext,
	SlotActiveContext,
	SlotSystemPatterns,
	SlotTechContext,
	SlotProgress,
}

// slotFiles maps each slot to the artifact file it commits to.
var slotFiles = map[string]string{
	SlotBrief:          "projectbrief.md",
	SlotProductContext: "productContext.md",
	SlotActiveContext:  "activeContext.md",
	SlotSystemPatterns: "systemPatterns.md",
	SlotTechContext:    "techContext.md",
	SlotProgress:       "progress.md",
}

// PromptSet holds the six self-contained generation requests built from
// one analysis snapshot.
type PromptSet struct {
	Brief          string `json:"brief"`
	ProductContext string `json:"product_context"`
	ActiveContext  string `json:"active_context"`
	SystemPatterns string `json:"system_patterns"`
	TechContext    string `json:"tech_context"`
	Progress       string `json:"progress"`
}

// ResponseSet is the caller-supplied answer for each prompt slot.
type ResponseSet struct {
	Brief          string `json:"brief"`
	ProductContext string `json:"product_context"`
	ActiveContext  string `json:"active_context"`
	SystemPatterns string `json:"system_patterns"`
	TechContext    string `json:"tech_context"`
	Progress       string `json:"progress"`
}

// bySlot returns the responses keyed by slot name.
func (r ResponseSet) bySlot() map[string]string {
	return map[string]string{
		SlotBrief:          r.Brief,
		SlotProductContext: r.ProductContext,
		SlotActiveContext:  r.ActiveContext,
		SlotSystemPatterns: r.SystemPatterns,
		SlotTechContext:    r.TechContext,
		SlotProgress:       r.Progress,
	}
}

// QualityMetrics holds five independently computed 0-100 scores and their
// unweighted mean.
type QualityMetrics struct {
	Specificity     int `json:"specificity"`
	Tone            int `json:"tone"`
	BusinessContext int `json:"business_context"`
	TechnicalDepth  int `json:"technical_depth"`
	Coherence       int `json:"coherence"`
	Overall         int `json:"overall"`
}

// ValidationError names the response slots that are missing or below the
// minimum length. It is fatal to the Phase 2 call and leaves the cached
// snapshot untouched.
type ValidationError struct {
	Slots []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("responses missing or below minimum length: %s", strings.Join(e.Slots, ", "))
}

// AnalyzeResult is the Phase 1 output.
type AnalyzeResult struct {
	AnalysisID string    `json:"analysis_id"`
	Status     Status    `json:"status"`
	Prompts    PromptSet `json:"prompts"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// SynthesisResult is the Phase 2 output: either a committed artifact list
// or an itemized enhancement request.
type SynthesisResult struct {
	Status       Status         `json:"status"`
	Artifacts    []string       `json:"artifacts,omitempty"`
	Metrics      QualityMetrics `json:"metrics"`
	Enhancements []string       `json:"enhancements,omitempty"`
}
