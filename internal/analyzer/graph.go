// Package analyzer derives atomic types, sequence types, the dependency
// graph, linearity/interruptibility, and the rational/algebraic/unsupported
// classification of a model.System.
//
// The dependency-graph and strongly-connected-components code follows the
// adjacency-list, explicit-Result-struct shape used by lvlath's graph
// package (DFSResult, DFSOptions), adapted to Tarjan's algorithm since the
// classification only needs component membership, not traversal order.
package analyzer

import "boltzc/internal/model"

// DependencyGraph is an adjacency-list digraph over type names (vertices =
// types union sequence types, per SPEC_FULL.md §4).
type DependencyGraph struct {
	Vertices []string
	adj      map[string]map[string]bool
}

func newDependencyGraph() *DependencyGraph {
	return &DependencyGraph{adj: make(map[string]map[string]bool)}
}

func (g *DependencyGraph) addVertex(v string) {
	if _, ok := g.adj[v]; !ok {
		g.adj[v] = make(map[string]bool)
		g.Vertices = append(g.Vertices, v)
	}
}

func (g *DependencyGraph) addEdge(from, to string) {
	g.addVertex(from)
	g.addVertex(to)
	g.adj[from][to] = true
}

// Neighbors returns the out-edges of v in map iteration order, which is
// not stable between calls; callers that need determinism should sort.
func (g *DependencyGraph) Neighbors(v string) []string {
	out := make([]string, 0, len(g.adj[v]))
	for n := range g.adj[v] {
		out = append(out, n)
	}
	return out
}

// AtomicTypes returns the set of types all of whose constructors are
// atomic.
func AtomicTypes(s *model.System) map[string]bool {
	atomic := make(map[string]bool)
	for _, name := range s.Order {
		all := true
		for _, c := range s.Types[name] {
			if !c.Atomic() {
				all = false
				break
			}
		}
		if all {
			atomic[name] = true
		}
	}
	return atomic
}

// DependencyGraphOf builds the graph described in SPEC_FULL.md §4: vertex
// set types union seqTypes; an edge type->referenced for every argument;
// a reverse edge when the referenced type is atomic (atoms are terminal
// and always reachable from any dependent); a self-loop and an edge to the
// element type for every sequence type.
func DependencyGraphOf(s *model.System) *DependencyGraph {
	g := newDependencyGraph()
	atomic := AtomicTypes(s)
	seq := s.SeqTypes()

	for _, name := range s.Order {
		g.addVertex(name)
	}
	// seqTypes(S) is already a subset of the declared type names (every
	// List argument target must be a key of S), so no new vertices are
	// introduced here, only the extra edges below.

	for _, name := range s.Order {
		for _, c := range s.Types[name] {
			for _, a := range c.Args {
				g.addEdge(name, a.Type)
				if atomic[a.Type] {
					g.addEdge(a.Type, name)
				}
			}
		}
	}
	for elem := range seq {
		g.addEdge(elem, elem)
	}
	return g
}
