package oracle

import "golang.org/x/exp/constraints"

// maxOf and absOf are the generic scalar helpers the fixed-point loop uses
// for its max-norm delta (the divergence cutoff is a plain >=); genericised
// over constraints.Ordered/constraints.Float so the same evaluation code
// could run over float32 without change, matching the x/exp/constraints
// idiom the rest of the pack reaches for instead of duplicating per-type
// min/max helpers.
func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func absOf[T constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
