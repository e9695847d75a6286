package relgraph

// stronglyConnected finds strongly connected components of more than one
// node using an iterative Tarjan's algorithm. The explicit frame stack
// avoids blowing the goroutine stack on deep dependency chains.
func stronglyConnected(g *Graph) [][]string {
	index := 0
	nodeIndex := make(map[string]int, len(g.Nodes))
	lowLink := make(map[string]int, len(g.Nodes))
	onStack := make(map[string]bool, len(g.Nodes))
	stack := make([]string, 0, len(g.Nodes))
	components := make([][]string, 0)

	type frame struct {
		path  string
		edge  int
		child string
	}

	connect := func(start string) {
		frames := []frame{{path: start}}
		nodeIndex[start] = index
		lowLink[start] = index
		index++
		stack = append(stack, start)
		onStack[start] = true

		for len(frames) > 0 {
			f := &frames[len(frames)-1]

			if f.child != "" {
				if lowLink[f.child] < lowLink[f.path] {
					lowLink[f.path] = lowLink[f.child]
				}
				f.child = ""
			}

			node := g.Nodes[f.path]
			advanced := false
			for f.edge < len(node.Dependencies) {
				next := node.Dependencies[f.edge].Path
				f.edge++

				if _, visited := nodeIndex[next]; !visited {
					nodeIndex[next] = index
					lowLink[next] = index
					index++
					stack = append(stack, next)
					onStack[next] = true
					f.child = next
					frames = append(frames, frame{path: next})
					advanced = true
					break
				}
				if onStack[next] && nodeIndex[next] < lowLink[f.path] {
					lowLink[f.path] = nodeIndex[next]
				}
			}
			if advanced {
				continue
			}

			if lowLink[f.path] == nodeIndex[f.path] {
				component := make([]string, 0)
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[top] = false
					component = append(component, top)
					if top == f.path {
						break
					}
				}
				if len(component) > 1 {
					components = append(components, component)
				}
			}
			frames = frames[:len(frames)-1]
		}
	}

	for path := range g.Nodes {
		if _, visited := nodeIndex[path]; !visited {
			connect(path)
		}
	}
	return components
}

// applyCycleRisk scores each node by the size of the cycle it participates
// in: 0 when acyclic, 25 for a two-node cycle, +15 per extra member,
// capped at 100.
func applyCycleRisk(g *Graph) {
	for _, component := range stronglyConnected(g) {
		risk := 25 + 15*(len(component)-2)
		if risk > 100 {
			risk = 100
		}
		for _, path := range component {
			g.Nodes[path].CycleRisk = risk
		}
	}
}
