package oracle

import (
	"fmt"

	"boltzc/internal/model"
)

// seedStep is the initial doubling step used to find a divergent upper
// bracket when no hint is available.
var seedStep = DecFromFloat64(1e-3)

// half is the bisection midpoint multiplier: lo.Add(hi).Mul(half) instead
// of DivInt(2), so the bracket-narrowing hot loop below is the call site
// Dec.Mul (and so bigfft.Mul) actually runs on, once per iteration.
var half = DecFromFloat64(0.5)

// bracket finds [lo, hi] with lo known-convergent (always 0) and hi
// known-divergent, by doubling from a small positive seed.
func bracket(s *model.System, epsY float64) (hi Dec, outcome evalOutcome, ok bool) {
	step := seedStep
	for i := 0; i < 4096; i++ {
		out := evaluateFixedPoint(s, step.Float64(), epsY)
		if !out.converged {
			return step, out, true
		}
		step = step.MulInt(2)
	}
	return Dec{}, evalOutcome{}, false
}

// FindRho brackets and bisects for the dominant singularity rho, per
// SPEC_FULL.md §5. epsRho is the bisection width at which the search
// stops; epsY is the fixed-point convergence tolerance used at every
// probed z.
func FindRho(s *model.System, epsRho, epsY float64) (Result, error) {
	hi, _, found := bracket(s, epsY)
	if !found {
		return Result{}, ErrDivergent
	}

	lo := DecZero()
	epsRhoDec := DecFromFloat64(epsRho)

	var lastConverged evalOutcome
	for hi.Sub(lo).Cmp(epsRhoDec) > 0 {
		mid := lo.Add(hi).Mul(half)
		out := evaluateFixedPoint(s, mid.Float64(), epsY)
		if out.converged {
			lo = mid
			lastConverged = out
		} else {
			hi = mid
		}
	}

	if lastConverged.y == nil {
		// lo never advanced off zero: no probed midpoint converged, down
		// to the last one within epsRho of zero.
		return Result{}, ErrDivergent
	}

	warnings := slowConvergenceWarnings(lastConverged.iters)
	return buildResult(s, lo.Float64(), lastConverged, warnings), nil
}

// EvaluateAt runs the fixed point at a single user-supplied rho0 (no
// bisection) and fails with ErrDivergent if it does not converge.
func EvaluateAt(s *model.System, rho0, epsY float64) (Result, error) {
	out := evaluateFixedPoint(s, rho0, epsY)
	if !out.converged {
		return Result{}, &DivergentError{Rho: rho0}
	}
	return buildResult(s, rho0, out, slowConvergenceWarnings(out.iters)), nil
}

func slowConvergenceWarnings(iters int) []string {
	if iters >= slowConvergenceIterations {
		return []string{fmt.Sprintf("slow convergence: fixed point took %d iterations", iters)}
	}
	return nil
}
