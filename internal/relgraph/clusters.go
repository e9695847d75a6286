package relgraph

import (
	"fmt"
	"path/filepath"
	"sort"
)

// detectClusters partitions nodes into connected components by undirected
// reachability. Only components holding more than one file are reported.
func detectClusters(g *Graph) []Cluster {
	visited := make(map[string]bool, len(g.Nodes))
	clusters := make([]Cluster, 0)

	paths := make([]string, 0, len(g.Nodes))
	for path := range g.Nodes {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, start := range paths {
		if visited[start] {
			continue
		}
		component := collectComponent(g, start, visited)
		if len(component) <= 1 {
			continue
		}
		sort.Strings(component)
		clusters = append(clusters, Cluster{
			Files:    component,
			Cohesion: cohesionOf(g, component),
			Purpose:  purposeLabel(component),
		})
	}

	sort.Slice(clusters, func(i, j int) bool {
		if len(clusters[i].Files) != len(clusters[j].Files) {
			return len(clusters[i].Files) > len(clusters[j].Files)
		}
		return clusters[i].Files[0] < clusters[j].Files[0]
	})
	return clusters
}

func collectComponent(g *Graph, start string, visited map[string]bool) []string {
	component := make([]string, 0)
	queue := []string{start}
	visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		component = append(component, current)

		node := g.Nodes[current]
		for _, edge := range node.Dependencies {
			if !visited[edge.Path] {
				visited[edge.Path] = true
				queue = append(queue, edge.Path)
			}
		}
		for _, edge := range node.Dependents {
			if !visited[edge.Path] {
				visited[edge.Path] = true
				queue = append(queue, edge.Path)
			}
		}
	}
	return component
}

// cohesionOf is the ratio of directed edges inside the component to the
// maximum possible, in [0, 1].
func cohesionOf(g *Graph, component []string) float64 {
	n := len(component)
	if n < 2 {
		return 0
	}
	member := make(map[string]bool, n)
	for _, path := range component {
		member[path] = true
	}

	internal := 0
	for _, path := range component {
		for _, edge := range g.Nodes[path].Dependencies {
			if member[edge.Path] {
				internal++
			}
		}
	}
	return float64(internal) / float64(n*(n-1))
}

// purposeLabel names a cluster after the directory holding most of its files.
func purposeLabel(component []string) string {
	counts := make(map[string]int)
	for _, path := range component {
		counts[filepath.Base(filepath.Dir(path))]++
	}

	dominant := ""
	best := 0
	for dir, count := range counts {
		if count > best || (count == best && dir < dominant) {
			dominant = dir
			best = count
		}
	}
	if dominant == "" || dominant == "." {
		dominant = "root"
	}
	return fmt.Sprintf("%d related files centered on %s", len(component), dominant)
}
