package relgraph

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mnemo-dev/mnemo/internal/analyzer"
)

var entryNameHints = []string{"main", "index", "app", "cli", "server"}

var exitNameHints = []string{"util", "helper", "types", "constants", "config"}

// candidate extensions tried, in order, when a relative import omits one.
var resolveExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// Builder constructs relationship graphs from structural records.
type Builder struct {
	strategy ScoreStrategy
	log      *slog.Logger
}

// NewBuilder creates a builder with the default constant edge strategy.
func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{strategy: ConstantStrategy{Weight: 0.5}, log: log}
}

// WithStrategy replaces the edge scoring strategy.
func (b *Builder) WithStrategy(s ScoreStrategy) *Builder {
	b.strategy = s
	return b
}

// Build runs the full graph construction: node init, edge resolution,
// derived metrics, entry/exit inference, critical paths, clusters.
//
// Graph building is best-effort enrichment: it never propagates a failure.
// An internal panic degrades to an empty graph.
func (b *Builder) Build(records []analyzer.StructuralRecord) (g *Graph) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Warn("graph construction failed, returning empty graph", "panic", r)
			g = NewGraph()
		}
	}()

	g = NewGraph()

	// One node per successfully parsed file, seeded with its own lists.
	for i := range records {
		rec := &records[i]
		if !rec.Success {
			continue
		}
		g.Nodes[rec.Path] = &Node{
			Path:         rec.Path,
			Imports:      rec.Imports,
			Exports:      rec.Exports,
			Dependencies: make([]Edge, 0),
			Dependents:   make([]Edge, 0),
		}
	}

	for i := range records {
		rec := &records[i]
		if !rec.Success {
			continue
		}
		for _, imp := range rec.Imports {
			if imp.External {
				continue
			}
			target, ok := resolveRelativeImport(rec.Path, imp.Module, g.Nodes)
			if !ok {
				// Unresolved imports are dropped silently.
				continue
			}
			b.addEdgePair(g, rec.Path, target, edgeKind(imp), b.strategy.EdgeStrength(rec, imp))
		}
	}

	for _, node := range g.Nodes {
		node.Importance = len(node.Dependents) + len(node.Exports)
	}
	applyCycleRisk(g)

	g.Entries, g.Exits = inferEndpoints(g)
	g.CriticalPaths = enumerateCriticalPaths(g)
	g.Clusters = detectClusters(g)

	return g
}

// addEdgePair inserts the dependency edge and its dependent mirror
// atomically; one never exists without the other.
func (b *Builder) addEdgePair(g *Graph, from, to, kind string, strength float64) {
	if from == to {
		return
	}
	src, dst := g.Nodes[from], g.Nodes[to]
	if src == nil || dst == nil {
		return
	}
	for _, e := range src.Dependencies {
		if e.Path == to {
			return
		}
	}
	src.Dependencies = append(src.Dependencies, Edge{Path: to, Kind: kind, Strength: strength})
	dst.Dependents = append(dst.Dependents, Edge{Path: from, Kind: kind, Strength: strength})
}

func edgeKind(imp analyzer.ImportInfo) string {
	if len(imp.Symbols) > 0 {
		return "named"
	}
	return "module"
}

// resolveRelativeImport maps a relative module path to a graph node path,
// trying the module as written, with candidate extensions, and as a
// directory index file.
func resolveRelativeImport(fromPath, module string, nodes map[string]*Node) (string, bool) {
	base := filepath.Clean(filepath.Join(filepath.Dir(fromPath), module))

	if _, ok := nodes[base]; ok {
		return base, true
	}
	for _, ext := range resolveExtensions {
		if _, ok := nodes[base+ext]; ok {
			return base + ext, true
		}
	}
	for _, ext := range resolveExtensions {
		candidate := filepath.Join(base, "index"+ext)
		if _, ok := nodes[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// inferEndpoints picks entry candidates (no outgoing edges, or an
// entry-like name) and exit candidates (no incoming edges, or an exit-like
// name), sorted for deterministic traversal.
func inferEndpoints(g *Graph) (entries, exits []string) {
	entries = make([]string, 0)
	exits = make([]string, 0)
	for path, node := range g.Nodes {
		if len(node.Dependencies) == 0 || nameMatches(path, entryNameHints) {
			entries = append(entries, path)
		}
		if len(node.Dependents) == 0 || nameMatches(path, exitNameHints) {
			exits = append(exits, path)
		}
	}
	sort.Strings(entries)
	sort.Strings(exits)
	return entries, exits
}

func nameMatches(path string, hints []string) bool {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	for _, hint := range hints {
		if strings.Contains(base, hint) {
			return true
		}
	}
	return false
}
