package emitter_test

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boltzc/internal/analyzer"
	"boltzc/internal/emitter"
	"boltzc/internal/model"
	"boltzc/internal/planner"
)

func motzkin() *model.System {
	s := model.NewSystem()
	s.AddType("M", []model.Constructor{
		{Name: "Leaf", Weight: 1},
		{Name: "Unary", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "M"}}},
		{Name: "Binary", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "M"}, {Kind: model.ArgType, Type: "M"}}},
	})
	return s
}

func buildPlan(t *testing.T, s *model.System, ps *model.ParametrisedSystem) *planner.Plan {
	t.Helper()
	ar, err := analyzer.Classify(s)
	require.NoError(t, err)
	p, err := planner.BuildFromAnalysis(ps, ar)
	require.NoError(t, err)
	return p
}

func TestEmitProducesParseableGoSource(t *testing.T) {
	s := motzkin()
	s.Annotations["withIO"] = "false"
	ps := &model.ParametrisedSystem{
		Original: s,
		Rho:      1.0 / 3,
		Y:        map[string]float64{"M": 1},
		Branch:   map[string][]float64{"M": {1.0 / 3, 1.0 / 3, 1.0 / 3}},
	}
	plan := buildPlan(t, s, ps)

	opts, err := emitter.ResolveOptions(s, "sampler")
	require.NoError(t, err)
	require.Equal(t, "sampler", opts.Package)
	require.False(t, opts.WithIO)

	src, err := emitter.Emit(s, ps, plan, opts, "run-1")
	require.NoError(t, err)

	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, "sampler.go", src, parser.AllErrors)
	require.NoError(t, err, "emitted source:\n%s", src)

	require.True(t, strings.Contains(string(src), "func GenerateM(rng *rand.Rand, ub int) (*M, int, bool)"))
	require.True(t, strings.Contains(string(src), "func SampleM(rng *rand.Rand, policy RetryPolicy) (*M, int, error)"))
}

func TestEmitWithIOProducesMainPackage(t *testing.T) {
	s := motzkin()
	s.Annotations["withIO"] = "true"
	s.Annotations["withShow"] = "TRUE"

	ps := &model.ParametrisedSystem{
		Original: s,
		Rho:      1.0 / 3,
		Y:        map[string]float64{"M": 1},
		Branch:   map[string][]float64{"M": {1.0 / 3, 1.0 / 3, 1.0 / 3}},
	}
	plan := buildPlan(t, s, ps)

	opts, err := emitter.ResolveOptions(s, "sampler")
	require.NoError(t, err)
	require.True(t, opts.WithIO)
	require.True(t, opts.WithShow)
	require.Equal(t, "main", opts.Package)

	src, err := emitter.Emit(s, ps, plan, opts, "run-2")
	require.NoError(t, err)

	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, "sampler.go", src, parser.AllErrors)
	require.NoError(t, err, "emitted source:\n%s", src)

	require.True(t, strings.Contains(string(src), "package main"))
	require.True(t, strings.Contains(string(src), "func main()"))
	require.True(t, strings.Contains(string(src), "func (v *M) String() string"))
}

func TestResolveOptionsRejectsBadToken(t *testing.T) {
	s := motzkin()
	s.Annotations["withIO"] = "yes"
	_, err := emitter.ResolveOptions(s, "sampler")
	require.ErrorIs(t, err, emitter.ErrBadAnnotation)
}
