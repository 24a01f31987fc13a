package oracle

import "boltzc/internal/model"

// Result is the internal oracle's output before it is wrapped into a
// model.ParametrisedSystem: rho, type values and per-constructor
// branching probabilities.
type Result struct {
	Rho      float64
	Y        map[string]float64
	Branch   map[string][]float64
	Warnings []string
}

// buildResult turns a converged fixed-point outcome into branching
// probabilities: constructor c_i of type t gets v_i / y_t (SPEC_FULL.md
// §5).
func buildResult(s *model.System, rho float64, out evalOutcome, warnings []string) Result {
	branch := make(map[string][]float64, len(s.Types))
	for _, name := range s.Order {
		vals := out.terms[name]
		yt := out.y[name]
		probs := make([]float64, len(vals))
		for i, v := range vals {
			if yt != 0 {
				probs[i] = v / yt
			}
		}
		branch[name] = probs
	}
	return Result{Rho: rho, Y: out.y, Branch: branch, Warnings: warnings}
}

// ToParametrisedSystem adapts an oracle Result into the
// model.ParametrisedSystem consumed by the Planner.
func (r Result) ToParametrisedSystem(s *model.System) *model.ParametrisedSystem {
	return &model.ParametrisedSystem{
		Original: s,
		Rho:      r.Rho,
		Y:        r.Y,
		Branch:   r.Branch,
		Warnings: r.Warnings,
	}
}
