package tuning

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"

	"boltzc/internal/model"
)

// ParseOutput reads the solver's answer stream: one rho, then the u
// vector (length numFreq), then the y vector (length numTypes), each
// token space- or newline-separated and parseable as a float.
func ParseOutput(data []byte, numFreq, numTypes int) (rho float64, u, y []float64, err error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Split(bufio.ScanWords)

	next := func() (float64, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("unexpected end of solver output")
		}
		return strconv.ParseFloat(sc.Text(), 64)
	}

	rho, err = next()
	if err != nil {
		return 0, nil, nil, fmt.Errorf("rho: %w", err)
	}

	u = make([]float64, numFreq)
	for i := range u {
		if u[i], err = next(); err != nil {
			return 0, nil, nil, fmt.Errorf("u[%d]: %w", i, err)
		}
	}

	y = make([]float64, numTypes)
	for i := range y {
		if y[i], err = next(); err != nil {
			return 0, nil, nil, fmt.Errorf("y[%d]: %w", i, err)
		}
	}

	if !finite(rho) {
		return 0, nil, nil, ErrRejected
	}
	for _, v := range u {
		if !finite(v) {
			return 0, nil, nil, ErrRejected
		}
	}
	for _, v := range y {
		if !finite(v) {
			return 0, nil, nil, ErrRejected
		}
	}
	return rho, u, y, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// buildParametrised converts the solver's (rho, u, y) answer into a
// model.ParametrisedSystem: constructor value = u_k^w * rho^w * prod
// g(arg), divided by the type's own value (spec.md §4.3).
func buildParametrised(s *model.System, freqOrder []string, rho float64, u, y []float64) (*model.ParametrisedSystem, error) {
	if len(y) != len(s.Order) {
		return nil, fmt.Errorf("tuning: solver returned %d type values, expected %d", len(y), len(s.Order))
	}

	yByName := make(map[string]float64, len(s.Order))
	for i, name := range s.Order {
		yByName[name] = y[i]
	}
	uByConstructor := make(map[string]float64, len(freqOrder))
	for i, name := range freqOrder {
		uByConstructor[name] = u[i]
	}

	branch := make(map[string][]float64, len(s.Order))
	for _, name := range s.Order {
		cons := s.Types[name]
		vals := make([]float64, len(cons))
		for i, c := range cons {
			v := math.Pow(rho, float64(c.Weight))
			if mult, marked := uByConstructor[c.Name]; marked {
				v *= math.Pow(mult, float64(c.Weight))
			}
			for _, a := range c.Args {
				switch a.Kind {
				case model.ArgType:
					v *= yByName[a.Type]
				case model.ArgList:
					base := yByName[a.Type]
					if base < 0 || base >= 1 {
						return nil, fmt.Errorf("%w: sequence base for %q is %g, outside [0,1)", ErrRejected, a.Type, base)
					}
					v *= 1 / (1 - base)
				}
			}
			vals[i] = v
		}
		yt := yByName[name]
		probs := make([]float64, len(cons))
		for i, v := range vals {
			if yt != 0 {
				probs[i] = v / yt
			}
		}
		branch[name] = probs
	}

	return &model.ParametrisedSystem{
		Original: s,
		Rho:      rho,
		Y:        yByName,
		Branch:   branch,
		U:        u,
	}, nil
}
