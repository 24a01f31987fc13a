package model

import "fmt"

// ErrNoAtoms is returned when a System has no atomic constructor: the
// generating function is identically zero (or has no positive radius) and
// no sampler built from it can terminate.
var ErrNoAtoms = fmt.Errorf("system has no atomic constructor")

// UnknownTypeError reports an Argument referencing a type that is not a
// key of the System.
type UnknownTypeError struct {
	Constructor string
	Referenced  string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("constructor %q references unknown type %q", e.Constructor, e.Referenced)
}

// UnsupportedError reports that a System is neither rational nor
// algebraic, with a human-readable reason.
type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported system: %s", e.Reason)
}

// DegenerateWeightError is returned for a constructor with zero arguments
// and zero weight: Phi would be degenerate at that term (a nullary
// contribution that never decreases size).
type DegenerateWeightError struct {
	Constructor string
}

func (e *DegenerateWeightError) Error() string {
	return fmt.Sprintf("constructor %q is atomic with weight 0", e.Constructor)
}
