package boltzc_test

import (
	"context"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boltzc/internal/model"
	"boltzc/pkg/boltzc"
)

func TestCompileMotzkinTreesViaOracle(t *testing.T) {
	c, err := boltzc.New(boltzc.Options{StoreKind: "memory"})
	require.NoError(t, err)

	input := "M = Leaf @1 | Unary(M) @1 | Binary(M, M) @1\n"
	res, err := c.Compile(context.Background(), boltzc.CompileRequest{
		InputPath: "motzkin.gr",
		Source:    strings.NewReader(input),
		EpsRho:    1e-9,
		EpsY:      1e-9,
		Package:   "sampler",
	})
	require.NoError(t, err)
	require.Equal(t, model.Algebraic, res.Classification)
	require.InDelta(t, 1.0/3, res.Rho, 1e-4)
	require.NotEmpty(t, res.RunID)

	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, "sampler.go", res.Source, parser.AllErrors)
	require.NoError(t, err, "emitted source:\n%s", res.Source)

	runs, err := c.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, res.RunID, runs[0].RunID)
}

func TestCompileRationalWithFrequencyRejectedWithoutSolver(t *testing.T) {
	c, err := boltzc.New(boltzc.Options{StoreKind: "memory"})
	require.NoError(t, err)

	input := "M = Leaf @1/2.0 | Unary(M) @1\n"
	_, err = c.Compile(context.Background(), boltzc.CompileRequest{
		InputPath: "marked.gr",
		Source:    strings.NewReader(input),
		EpsRho:    1e-9,
		EpsY:      1e-9,
		Package:   "sampler",
	})
	require.Error(t, err)
}
