package relgraph

import "github.com/mnemo-dev/mnemo/internal/analyzer"

// ScoreStrategy scores the coupling strength of one resolved import edge.
//
// Contract: inputs are the importing record and the import it resolved
// from; the output must be in [0, 1]. The builder applies the returned
// value to both sides of the edge pair.
type ScoreStrategy interface {
	EdgeStrength(from *analyzer.StructuralRecord, imp analyzer.ImportInfo) float64
}

// ConstantStrategy weighs every edge identically. This is a deliberate
// simplification; a computed strategy (symbol overlap, reference counts)
// can replace it without touching the builder.
type ConstantStrategy struct {
	Weight float64
}

func (s ConstantStrategy) EdgeStrength(*analyzer.StructuralRecord, analyzer.ImportInfo) float64 {
	return s.Weight
}
