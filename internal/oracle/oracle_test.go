package oracle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boltzc/internal/model"
	"boltzc/internal/oracle"
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

func binaryWords() *model.System {
	s := model.NewSystem()
	s.AddType("T", []model.Constructor{
		{Name: "Zero", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "T"}}},
		{Name: "One", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "T"}}},
		{Name: "Eps", Weight: 0},
	})
	return s
}

func TestFindRhoMotzkin(t *testing.T) {
	res, err := oracle.FindRho(motzkin(), 1e-9, 1e-9)
	require.NoError(t, err)
	require.InDelta(t, 1.0/3.0, res.Rho, 1e-6)
	for _, p := range res.Branch["M"] {
		require.InDelta(t, 1.0/3.0, p, 1e-2)
	}
}

func TestFindRhoBinaryWords(t *testing.T) {
	res, err := oracle.FindRho(binaryWords(), 1e-9, 1e-9)
	require.NoError(t, err)
	require.InDelta(t, 0.5, res.Rho, 1e-6)

	sum := 0.0
	for _, p := range res.Branch["T"] {
		sum += p
	}
	require.InDelta(t, 1.0, sum, 1e-4)
}

func TestEvaluateAtUserRho(t *testing.T) {
	res, err := oracle.EvaluateAt(motzkin(), 0.33333, 1e-10)
	require.NoError(t, err)
	require.InDelta(t, 1.0, res.Y["M"], 1e-2)
}

func TestEvaluateAtDivergentUserRho(t *testing.T) {
	_, err := oracle.EvaluateAt(motzkin(), 0.9, 1e-6)
	require.Error(t, err)
}

func sequenceOfAtoms() *model.System {
	s := model.NewSystem()
	s.AddType("B", []model.Constructor{{Name: "b", Weight: 1}})
	s.AddType("A", []model.Constructor{{Name: "Seq", Args: []model.Argument{{Kind: model.ArgList, Type: "B"}}}})
	return s
}

func TestSequenceOfAtomsFindsRhoOne(t *testing.T) {
	res, err := oracle.FindRho(sequenceOfAtoms(), 1e-6, 1e-9)
	require.NoError(t, err)
	require.InDelta(t, 1.0, res.Rho, 1e-4)
}

func TestSequenceOfAtomsUserRhoAtOneDiverges(t *testing.T) {
	_, err := oracle.EvaluateAt(sequenceOfAtoms(), 1.0, 1e-9)
	require.Error(t, err, "the sequence base hits exactly 1 at rho=1, outside g(List u)'s 0<=y_u<1 domain")
}

func TestSequenceOfAtomsUserRhoBelowOneConverges(t *testing.T) {
	res, err := oracle.EvaluateAt(sequenceOfAtoms(), 0.5, 1e-9)
	require.NoError(t, err)
	require.InDelta(t, 2.0, res.Y["A"], 1e-6)
}

func TestBranchingProbabilitiesSumToOne(t *testing.T) {
	res, err := oracle.FindRho(motzkin(), 1e-9, 1e-9)
	require.NoError(t, err)
	for typeName, probs := range res.Branch {
		sum := 0.0
		for _, p := range probs {
			sum += p
		}
		require.InDeltaf(t, 1.0, sum, 1e-4, "type %s branching probabilities", typeName)
	}
}
