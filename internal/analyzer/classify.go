package analyzer

import (
	"fmt"

	"boltzc/internal/model"
)

// Linear reports whether c has no List argument and at most one argument
// whose referenced type is not atomic (SPEC_FULL.md §4).
func Linear(s *model.System, c model.Constructor, atomic map[string]bool) bool {
	nonAtomicRefs := 0
	for _, a := range c.Args {
		if a.Kind == model.ArgList {
			return false
		}
		if !atomic[a.Type] {
			nonAtomicRefs++
		}
	}
	return nonAtomicRefs <= 1
}

// Interruptible reports whether c's argument list contributes at most one
// atom, so the recursive generator can re-check its size budget at every
// step.
func Interruptible(c model.Constructor, atomic map[string]bool) bool {
	atoms := 0
	if c.Atomic() {
		atoms++
	}
	for _, a := range c.Args {
		if a.Kind == model.ArgType && atomic[a.Type] {
			atoms++
		}
	}
	return atoms <= 1
}

// Result bundles classification with the graph and atomic/sequence sets
// computed along the way, so callers never need to recompute them.
type Result struct {
	Class  model.Classification
	Reason string
	Atomic map[string]bool
	Seq    map[string]bool
	Graph  *DependencyGraph
	SCCs   [][]string
}

// Classify is deterministic and idempotent for a given System: it never
// mutates s and always returns the same Class, Reason, Atomic and Seq for
// the same input. The order of SCCs, and of vertices inside each one,
// follows Neighbors' map iteration order and can differ between calls.
func Classify(s *model.System) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	atomic := AtomicTypes(s)
	seq := s.SeqTypes()
	graph := DependencyGraphOf(s)
	sccs := tarjanSCC(graph)

	linear := true
	interruptible := true
	for _, name := range s.Order {
		for _, c := range s.Types[name] {
			if !Linear(s, c, atomic) {
				linear = false
			}
			if !Interruptible(c, atomic) {
				interruptible = false
			}
		}
	}

	if linear && interruptible {
		if len(sccs) == 1 {
			return Result{Class: model.Rational, Atomic: atomic, Seq: seq, Graph: graph, SCCs: sccs}, nil
		}
		reason := fmt.Sprintf("%d strongly connected components", len(sccs))
		return Result{Class: model.Unsupported, Reason: reason, Atomic: atomic, Seq: seq, Graph: graph, SCCs: sccs},
			&model.UnsupportedError{Reason: reason}
	}

	// Not linear/interruptible: algebraic is permitted (List args and
	// multiple non-atomic refs), well-formedness was already checked by
	// Validate above.
	return Result{Class: model.Algebraic, Atomic: atomic, Seq: seq, Graph: graph, SCCs: sccs}, nil
}
