// Package planner builds the abstract sampler plan consumed by the
// Emitter (SPEC_FULL.md §7): per type, a branching table over
// constructors by cumulative probability, and per branch an ordered
// sequence of recursive/list child calls under a size-budget discipline.
//
// The plan is data, not code: it names what to call and in what order,
// leaving the actual ub-threading control flow (the running subtraction
// of weight and child sizes) to the Emitter, the same separation the
// teacher draws between internal/evo (decides which operator fires) and
// the morphology/nn packages that execute it.
package planner

import (
	"fmt"
	"sort"

	"boltzc/internal/analyzer"
	"boltzc/internal/model"
)

// ChildCall is one recursive or list-generator call inside a branch.
type ChildCall struct {
	Kind model.ArgKind
	Type string
}

// Branch is one constructor alternative of a type's plan: its atom
// weight, its child calls in emission order, and the cumulative
// probability threshold that selects it (the last branch in a type needs
// no test — it is the fallthrough).
type Branch struct {
	Constructor model.Constructor
	CumProb     float64
	Last        bool
	Children    []ChildCall
}

// TypePlan is the decision plan for one declared type.
type TypePlan struct {
	Name string

	// Interruptible marks that an explicit budget check should be
	// emitted before every atom emission, so a rational system's
	// generator aborts as soon as the budget is exhausted rather than
	// after accumulating further structure.
	Interruptible bool

	Branches []Branch
}

// ListPlan is the synthesised geometric-tail generator for one sequence
// type: with probability ContinueProb draw one more element and recurse,
// else terminate.
type ListPlan struct {
	ElementType  string
	ContinueProb float64
}

// Plan is the complete sampler plan for a parametrised system.
type Plan struct {
	Types []TypePlan
	Lists []ListPlan
}

// Build constructs the Plan from a parametrised system and the
// interruptibility flags the Analyzer already computed per constructor.
// interruptible maps type name to whether every constructor of that type
// satisfies the interruptibility test (true for every type in a Rational
// system; may vary per-constructor in an Algebraic one, so Build takes a
// per-constructor predicate instead of a single system-wide flag).
func Build(ps *model.ParametrisedSystem, interruptible func(typeName string, c model.Constructor) bool) (*Plan, error) {
	s := ps.Original
	plan := &Plan{}

	for _, name := range s.Order {
		cons := s.Types[name]
		probs, ok := ps.Branch[name]
		if !ok || len(probs) != len(cons) {
			return nil, fmt.Errorf("planner: missing branching probabilities for type %q", name)
		}

		tp := TypePlan{Name: name, Interruptible: true}
		cum := 0.0
		for i, c := range cons {
			if !interruptible(name, c) {
				tp.Interruptible = false
			}
			cum += probs[i]
			last := i == len(cons)-1
			if last {
				cum = 1
			}

			children := make([]ChildCall, 0, len(c.Args))
			for _, a := range c.Args {
				children = append(children, ChildCall{Kind: a.Kind, Type: a.Type})
			}

			tp.Branches = append(tp.Branches, Branch{
				Constructor: c,
				CumProb:     cum,
				Last:        last,
				Children:    children,
			})
		}
		plan.Types = append(plan.Types, tp)
	}

	var seqNames []string
	for name := range s.SeqTypes() {
		seqNames = append(seqNames, name)
	}
	sort.Strings(seqNames)
	for _, elem := range seqNames {
		plan.Lists = append(plan.Lists, ListPlan{
			ElementType:  elem,
			ContinueProb: ps.Y[elem],
		})
	}

	return plan, nil
}

// BuildFromAnalysis is the common-case entry point: it derives the
// per-constructor interruptibility predicate from an analyzer.Result's
// atomic-type set, so callers in cmd/boltzc and the Emitter do not need to
// recompute it.
func BuildFromAnalysis(ps *model.ParametrisedSystem, ar analyzer.Result) (*Plan, error) {
	return Build(ps, func(_ string, c model.Constructor) bool {
		return analyzer.Interruptible(c, ar.Atomic)
	})
}
