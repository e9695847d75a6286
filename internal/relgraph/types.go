// Package relgraph builds the directed dependency graph over successfully
// parsed files: paired dependency/dependent edges, component clusters, and
// critical paths between inferred entry and exit points.
package relgraph

import (
	"github.com/mnemo-dev/mnemo/internal/analyzer"
)

// Edge is one side of a paired dependency relation. Edges are always added
// as a pair: an entry in Dependencies of A pointing at B has a mirror in
// Dependents of B pointing back at A.
type Edge struct {
	Path     string
	Kind     string // named | module
	Strength float64
}

// Node is a file's position in the relationship graph.
type Node struct {
	Path    string
	Imports []analyzer.ImportInfo
	Exports []analyzer.ExportInfo

	Dependencies []Edge // outgoing
	Dependents   []Edge // incoming

	// Importance is fan-in plus export count.
	Importance int
	// CycleRisk is 0 for acyclic nodes and grows with the size of the
	// strongly connected component the node participates in (0-100).
	CycleRisk int
}

// Cluster is a connected group of more than one file.
type Cluster struct {
	Files    []string
	Cohesion float64
	Purpose  string
}

// CriticalPath is an inferred entry-to-exit traversal through the graph.
type CriticalPath struct {
	Entry       string
	Exit        string
	Files       []string
	RiskFactors []string
	Mitigation  string
	RiskScore   int
}

// Graph is the complete relational result for one analysis.
type Graph struct {
	Nodes         map[string]*Node
	Clusters      []Cluster
	CriticalPaths []CriticalPath
	Entries       []string
	Exits         []string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:         make(map[string]*Node),
		Clusters:      make([]Cluster, 0),
		CriticalPaths: make([]CriticalPath, 0),
		Entries:       make([]string, 0),
		Exits:         make([]string, 0),
	}
}

// EdgeCount returns the number of dependency edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, node := range g.Nodes {
		count += len(node.Dependencies)
	}
	return count
}
