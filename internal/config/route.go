package config

import (
	"fmt"

	"boltzc/internal/model"
)

// ErrFrequencyWithoutTuner is returned when a rational system carries
// frequency-marked constructors but no --solver was given: SPEC_FULL.md §9
// resolves the open question conservatively — a rational system with
// frequencies is rejected unless the caller explicitly opts into routing
// it through the Tuner Bridge.
var ErrFrequencyWithoutTuner = fmt.Errorf("config: rational system has frequency annotations; pass --solver to route it through the tuner")

// UseTuner decides whether a compile should go through the Tuner Bridge
// rather than the internal oracle: an algebraic system when it carries
// frequency annotations or --solver was explicitly passed, and a rational
// system with frequency annotations when --solver was explicitly passed.
// A rational system with frequencies and no --solver is rejected; every
// other system uses the internal oracle.
func UseTuner(s *model.System, class model.Classification, solverExplicit bool) (bool, error) {
	hasFreq := s.HasFrequencies()
	switch class {
	case model.Algebraic:
		return hasFreq || solverExplicit, nil
	case model.Rational:
		if !hasFreq {
			return false, nil
		}
		if !solverExplicit {
			return false, ErrFrequencyWithoutTuner
		}
		return true, nil
	default:
		return false, fmt.Errorf("config: cannot route classification %s", class)
	}
}
