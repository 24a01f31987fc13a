// Package model is the in-memory representation of a weighted combinatorial
// system: types, constructors, arguments, weights, frequency marks and
// annotations.
package model

import "fmt"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// ArgKind tags an Argument as a direct type reference or a sequence over one.
type ArgKind int

const (
	ArgType ArgKind = iota
	ArgList
)

func (k ArgKind) String() string {
	switch k {
	case ArgType:
		return "Type"
	case ArgList:
		return "List"
	default:
		return fmt.Sprintf("ArgKind(%d)", int(k))
	}
}

// Argument references another type in the system, either directly
// (Type t) or as a sequence over it (List t). The Planner dispatches on
// Kind rather than using an interface hierarchy.
type Argument struct {
	Kind ArgKind
	Type string
}

// Constructor is one alternative of a type: a name, an ordered argument
// list, an atom weight and an optional frequency mark.
type Constructor struct {
	Name   string     `json:"name"`
	Args   []Argument `json:"-"`
	Weight int        `json:"weight"`

	// Frequency, when non-nil, is the user-requested relative frequency of
	// this constructor among generated objects; it routes the system to the
	// Tuner Bridge (internal/tuning) instead of the internal oracle.
	Frequency *float64 `json:"frequency,omitempty"`
}

// Atomic reports whether c has no arguments: its weight is its only
// contribution and it is always terminal.
func (c Constructor) Atomic() bool {
	return len(c.Args) == 0
}

// Marked reports whether c carries a frequency annotation.
func (c Constructor) Marked() bool {
	return c.Frequency != nil
}

// System is an ordered mapping of type name to its non-empty ordered list
// of constructors, plus free-form annotations parsed from the input
// grammar's preamble.
type System struct {
	VersionedRecord

	// Source is the originating file path, carried for diagnostics and
	// store rows only; it has no bearing on classification or the oracle.
	Source string `json:"source,omitempty"`

	// Order preserves declaration order; Types indexes by name.
	Order []string                 `json:"order"`
	Types map[string][]Constructor `json:"types"`

	Annotations map[string]string `json:"annotations,omitempty"`
}

// NewSystem returns an empty System ready for incremental construction by
// the grammar parser.
func NewSystem() *System {
	return &System{
		Types:       make(map[string][]Constructor),
		Annotations: make(map[string]string),
	}
}

// AddType appends a type and its constructors, preserving declaration
// order. AddType does not validate; call Validate once the system is
// fully built.
func (s *System) AddType(name string, cons []Constructor) {
	if _, exists := s.Types[name]; !exists {
		s.Order = append(s.Order, name)
	}
	s.Types[name] = cons
}

// Classification is the outcome of Analyzer.Classify.
type Classification int

const (
	Unclassified Classification = iota
	Rational
	Algebraic
	Unsupported
)

func (c Classification) String() string {
	switch c {
	case Rational:
		return "rational"
	case Algebraic:
		return "algebraic"
	case Unsupported:
		return "unsupported"
	default:
		return "unclassified"
	}
}

// ParametrisedSystem is the Oracle's (or Tuner Bridge's) output: the
// original integer-weight System rewritten with per-constructor branching
// probabilities at the dominant singularity rho.
type ParametrisedSystem struct {
	Original *System

	// Rho is the Boltzmann parameter.
	Rho float64

	// Y maps type name to its generating-function value at Rho.
	Y map[string]float64

	// Branch maps type name to, in constructor order, the branching
	// probability of each constructor (sums to 1 within oracle tolerance).
	Branch map[string][]float64

	// U holds the per-frequency-annotated-constructor marking multiplier
	// returned by the Tuner Bridge; empty when the internal oracle was
	// used.
	U []float64

	// Warnings carries advisory diagnostics (e.g. slow convergence); it
	// never affects exit status.
	Warnings []string
}
