package tuning_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boltzc/internal/model"
	"boltzc/internal/tuning"
)

func motzkinWithFrequency() *model.System {
	s := model.NewSystem()
	freq := 2.0
	s.AddType("M", []model.Constructor{
		{Name: "Leaf", Weight: 1, Frequency: &freq},
		{Name: "Unary", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "M"}}},
		{Name: "Binary", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "M"}, {Kind: model.ArgType, Type: "M"}}},
	})
	return s
}

func binaryWords() *model.System {
	s := model.NewSystem()
	s.AddType("A", []model.Constructor{
		{Name: "Empty", Weight: 1},
		{Name: "Cons", Weight: 1, Args: []model.Argument{{Kind: model.ArgList, Type: "A"}}},
	})
	return s
}

func TestEncodeSpecHeaderCounts(t *testing.T) {
	s := motzkinWithFrequency()
	data, freqOrder, err := tuning.EncodeSpec(s)
	require.NoError(t, err)
	require.Equal(t, []string{"Leaf"}, freqOrder)
	require.Contains(t, string(data), "1 1\n")
}

func TestEncodeDecodeRoundTripPreservesTypeAndConstructorShape(t *testing.T) {
	s := motzkinWithFrequency()
	data, _, err := tuning.EncodeSpec(s)
	require.NoError(t, err)

	decoded, err := tuning.DecodeSpec(data, s.Order, tuning.OrderedSeqTypes(s))
	require.NoError(t, err)

	require.Len(t, decoded.Order, len(s.Order))
	decodedCons := decoded.Types[decoded.Order[0]]
	require.Len(t, decodedCons, len(s.Types[s.Order[0]]))

	// Leaf: atomic, frequency-marked.
	require.Empty(t, decodedCons[0].Args)
	require.NotNil(t, decodedCons[0].Frequency)
	require.Equal(t, 2.0, *decodedCons[0].Frequency)

	// Unary(M): one ArgType ref to M.
	require.Equal(t, []model.Argument{{Kind: model.ArgType, Type: "M"}}, decodedCons[1].Args)

	// Binary(M, M): two ArgType refs to M.
	require.Equal(t, []model.Argument{
		{Kind: model.ArgType, Type: "M"},
		{Kind: model.ArgType, Type: "M"},
	}, decodedCons[2].Args)
}

func TestEncodeDecodeRoundTripPreservesSequenceArgs(t *testing.T) {
	s := binaryWords()
	data, _, err := tuning.EncodeSpec(s)
	require.NoError(t, err)

	decoded, err := tuning.DecodeSpec(data, s.Order, tuning.OrderedSeqTypes(s))
	require.NoError(t, err)

	decodedCons := decoded.Types[decoded.Order[0]]
	require.Empty(t, decodedCons[0].Args)
	require.Equal(t, []model.Argument{{Kind: model.ArgList, Type: "A"}}, decodedCons[1].Args)
}

func TestParseOutputFiniteValues(t *testing.T) {
	out := []byte("0.333333 2.0 0.5 0.5 0.5\n")
	rho, u, y, err := tuning.ParseOutput(out, 1, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.333333, rho, 1e-9)
	require.Equal(t, []float64{2.0}, u)
	require.Equal(t, []float64{0.5}, y)
}

func TestParseOutputRejectsNonFinite(t *testing.T) {
	out := []byte("NaN 1.0 0.5\n")
	_, _, _, err := tuning.ParseOutput(out, 1, 1)
	require.Error(t, err)
}

func TestDefaultsForClassification(t *testing.T) {
	rational := tuning.DefaultsFor(model.Rational)
	require.Equal(t, "interior-point", rational.Solver)
	require.Equal(t, 2500, rational.Iterations)

	algebraic := tuning.DefaultsFor(model.Algebraic)
	require.Equal(t, "conic", algebraic.Solver)
	require.Equal(t, 20, algebraic.Iterations)
}
