package oracle

import (
	"math"

	"boltzc/internal/model"
)

// divergenceCutoff is the magnitude beyond which a fixed-point component
// is treated as diverging rather than merely large.
const divergenceCutoff = 1e12

// maxIterations bounds the fixed-point loop; exceeding it without
// convergence is treated as divergence (it only happens arbitrarily close
// to rho, where convergence is geometrically slow).
const maxIterations = 100000

// slowConvergenceIterations is the advisory threshold for the "slow
// convergence" warning of SPEC_FULL.md §5.
const slowConvergenceIterations = 2000

// evalOutcome is the result of running the fixed point to convergence (or
// divergence) at a given z.
type evalOutcome struct {
	y         map[string]float64
	terms     map[string][]float64 // per-type, per-constructor partial value v_i
	converged bool
	iters     int
}

// phiStep computes y' = Phi_S(z, y) once, along with the per-constructor
// partial terms needed later for branching probabilities.
func phiStep(s *model.System, z float64, y map[string]float64) (next map[string]float64, terms map[string][]float64, nonFinite bool) {
	next = make(map[string]float64, len(s.Types))
	terms = make(map[string][]float64, len(s.Types))

	for _, name := range s.Order {
		cons := s.Types[name]
		vals := make([]float64, len(cons))
		sum := 0.0
		for i, c := range cons {
			v := math.Pow(z, float64(c.Weight))
			for _, a := range c.Args {
				switch a.Kind {
				case model.ArgType:
					v *= y[a.Type]
				case model.ArgList:
					base := y[a.Type]
					if base < 0 || base >= 1 {
						return nil, nil, true
					}
					v *= 1 / (1 - base)
				}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, true
			}
			vals[i] = v
			sum += v
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, nil, true
		}
		next[name] = sum
		terms[name] = vals
	}
	return next, terms, false
}

// evaluateFixedPoint iterates y <- Phi_S(z, y) from y = 0 until
// convergence (max-norm delta below epsY), divergence (non-finite or a
// component crossing divergenceCutoff, or a sequence base reaching 1), or
// the iteration budget is exhausted.
func evaluateFixedPoint(s *model.System, z float64, epsY float64) evalOutcome {
	y := make(map[string]float64, len(s.Types))
	for _, name := range s.Order {
		y[name] = 0
	}

	var terms map[string][]float64
	for iter := 1; iter <= maxIterations; iter++ {
		next, t, nonFinite := phiStep(s, z, y)
		if nonFinite {
			return evalOutcome{converged: false, iters: iter}
		}
		terms = t

		delta := 0.0
		for name, v := range next {
			delta = maxOf(delta, absOf(v-y[name]))
			if v >= divergenceCutoff {
				return evalOutcome{converged: false, iters: iter}
			}
		}
		y = next
		if delta < epsY {
			return evalOutcome{y: y, terms: terms, converged: true, iters: iter}
		}
	}
	return evalOutcome{converged: false, iters: maxIterations}
}
