package relgraph

import (
	"fmt"
	"path/filepath"
	"sort"
)

const maxCriticalPaths = 10

// enumerateCriticalPaths computes the shortest path by edge count for every
// (entry, exit) pair, keeps paths with more than two files, attaches
// qualitative risk text, and returns the top paths by aggregate risk.
func enumerateCriticalPaths(g *Graph) []CriticalPath {
	paths := make([]CriticalPath, 0)

	for _, entry := range g.Entries {
		for _, exit := range g.Exits {
			if entry == exit {
				continue
			}
			route := shortestPath(g, entry, exit)
			if len(route) <= 2 {
				continue
			}
			cp := CriticalPath{Entry: entry, Exit: exit, Files: route}
			cp.RiskFactors, cp.Mitigation, cp.RiskScore = assessPath(g, route)
			paths = append(paths, cp)
		}
	}

	sort.Slice(paths, func(i, j int) bool {
		if paths[i].RiskScore != paths[j].RiskScore {
			return paths[i].RiskScore > paths[j].RiskScore
		}
		if paths[i].Entry != paths[j].Entry {
			return paths[i].Entry < paths[j].Entry
		}
		return paths[i].Exit < paths[j].Exit
	})

	if len(paths) > maxCriticalPaths {
		paths = paths[:maxCriticalPaths]
	}
	return paths
}

// shortestPath runs a BFS over dependency edges from entry to exit and
// returns the file sequence, or nil when exit is unreachable.
func shortestPath(g *Graph, entry, exit string) []string {
	if g.Nodes[entry] == nil || g.Nodes[exit] == nil {
		return nil
	}

	prev := map[string]string{entry: ""}
	queue := []string{entry}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == exit {
			break
		}
		for _, edge := range g.Nodes[current].Dependencies {
			if _, seen := prev[edge.Path]; seen {
				continue
			}
			prev[edge.Path] = current
			queue = append(queue, edge.Path)
		}
	}

	if _, reached := prev[exit]; !reached {
		return nil
	}

	route := make([]string, 0)
	for at := exit; at != ""; at = prev[at] {
		route = append(route, at)
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

func assessPath(g *Graph, route []string) (factors []string, mitigation string, score int) {
	factors = make([]string, 0)
	score = len(route) * 10

	if len(route) > 4 {
		factors = append(factors, fmt.Sprintf("long dependency chain (%d files)", len(route)))
	}

	maxCycleRisk := 0
	for _, path := range route {
		node := g.Nodes[path]
		if node.CycleRisk > maxCycleRisk {
			maxCycleRisk = node.CycleRisk
		}
		if node.Importance >= 5 {
			factors = append(factors, fmt.Sprintf("passes through highly shared file %s", filepath.Base(path)))
			score += node.Importance
		}
	}
	if maxCycleRisk > 0 {
		factors = append(factors, "traverses a dependency cycle")
		score += maxCycleRisk
	}

	if len(factors) == 0 {
		factors = append(factors, "no elevated risk indicators")
	}
	mitigation = "Add integration coverage along this path and introduce interface seams at the most shared files."
	return factors, mitigation, score
}
