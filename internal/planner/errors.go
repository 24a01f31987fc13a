package planner

import "fmt"

// RetryPolicy describes the rejection-sampler wrapper every emitted entry
// point uses: draw with Build's plan at the given upper bound, and if the
// drawn size falls outside [lb, ub], discard and redraw, up to MaxAttempts
// times before giving up.
type RetryPolicy struct {
	LowerBound  int
	UpperBound  int
	MaxAttempts int
}

// DefaultRetryPolicy accepts sizes within 10% of the requested target
// size, with a generous attempt budget since rejection probability can be
// high near the singularity.
func DefaultRetryPolicy(target int) RetryPolicy {
	lb := target - target/10
	ub := target + target/10
	if lb < 0 {
		lb = 0
	}
	return RetryPolicy{LowerBound: lb, UpperBound: ub, MaxAttempts: 100000}
}

// ErrExhausted reports that MaxAttempts draws all fell outside the
// acceptance window. The emitted source declares its own ErrExhausted,
// which is what its rejection loop returns.
var ErrExhausted = fmt.Errorf("planner: rejection sampler exhausted its attempt budget")
