package model

import "modernc.org/mathutil"

// Validate checks the System invariants of SPEC_FULL.md §3:
//   - every argument's referenced type is a key of the System
//   - every type has a non-empty constructor list
//   - frequencies, if present, are positive and finite
//   - at least one atomic constructor exists anywhere in the system
//
// Validate does not classify the system; call analyzer.Classify separately.
func (s *System) Validate() error {
	hasAtom := false

	for _, name := range s.Order {
		cons := s.Types[name]
		if len(cons) == 0 {
			return &UnsupportedError{Reason: "type \"" + name + "\" has no constructors"}
		}
		for _, c := range cons {
			if c.Atomic() {
				if c.Weight == 0 {
					return &DegenerateWeightError{Constructor: c.Name}
				}
				hasAtom = true
			}
			if c.Marked() && (*c.Frequency <= 0 || isNonFinite(*c.Frequency)) {
				return &UnsupportedError{Reason: "constructor \"" + c.Name + "\" has a non-positive or non-finite frequency"}
			}
			for _, a := range c.Args {
				if _, ok := s.Types[a.Type]; !ok {
					return &UnknownTypeError{Constructor: c.Name, Referenced: a.Type}
				}
			}
		}
	}

	if !hasAtom {
		return ErrNoAtoms
	}
	return nil
}

func isNonFinite(f float64) bool {
	return f != f || f > 1e308 || f < -1e308
}

// SeqTypes returns the set of type names that appear as the element type
// of a List argument anywhere in the system.
func (s *System) SeqTypes() map[string]bool {
	seq := make(map[string]bool)
	for _, name := range s.Order {
		for _, c := range s.Types[name] {
			for _, a := range c.Args {
				if a.Kind == ArgList {
					seq[a.Type] = true
				}
			}
		}
	}
	return seq
}

// HasFrequencies reports whether any constructor in the system carries a
// frequency mark.
func (s *System) HasFrequencies() bool {
	for _, name := range s.Order {
		for _, c := range s.Types[name] {
			if c.Marked() {
				return true
			}
		}
	}
	return false
}

// WeightGCD returns the greatest common divisor shared by every
// constructor weight declared across the whole system, or 1 if the
// system has no weights worth reducing. A grammar whose weights are all
// multiples of this value (e.g. "@2 | @4 | @6") declares the same
// generating function as one divided through by it; CLI diagnostics use
// this to flag a grammar file worth tidying up by hand.
func (s *System) WeightGCD() int64 {
	g := int64(0)
	for _, name := range s.Order {
		for _, c := range s.Types[name] {
			if c.Weight <= 0 {
				continue
			}
			g = int64(mathutil.GCDUint64(uint64(g), uint64(c.Weight)))
		}
	}
	if g <= 1 {
		return 1
	}
	return g
}
