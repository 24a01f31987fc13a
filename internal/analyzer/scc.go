package analyzer

// tarjanSCC computes the strongly connected components of g using
// Tarjan's algorithm, returning one slice of vertex names per component.
// The iterative formulation avoids recursion depth limits for large
// systems, mirroring the defensive-iteration style of the pack's graph
// traversal code.
func tarjanSCC(g *DependencyGraph) [][]string {
	index := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var comps [][]string
	next := 0

	type frame struct {
		v     string
		iter  int
		neigh []string
	}

	var visit func(start string)
	visit = func(start string) {
		var work []*frame
		push := func(v string) {
			index[v] = next
			lowlink[v] = next
			next++
			stack = append(stack, v)
			onStack[v] = true
			work = append(work, &frame{v: v, neigh: g.Neighbors(v)})
		}
		push(start)

		for len(work) > 0 {
			top := work[len(work)-1]
			if top.iter < len(top.neigh) {
				w := top.neigh[top.iter]
				top.iter++
				if _, seen := index[w]; !seen {
					push(w)
					continue
				}
				if onStack[w] && lowlink[w] < lowlink[top.v] {
					lowlink[top.v] = lowlink[w]
				}
				continue
			}

			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1]
				if lowlink[top.v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[top.v]
				}
			}
			if lowlink[top.v] == index[top.v] {
				var comp []string
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					comp = append(comp, w)
					if w == top.v {
						break
					}
				}
				comps = append(comps, comp)
			}
		}
	}

	for _, v := range g.Vertices {
		if _, seen := index[v]; !seen {
			visit(v)
		}
	}
	return comps
}
