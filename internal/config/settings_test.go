package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"boltzc/internal/config"
	"boltzc/internal/model"
)

func TestLoadSettingsAbsentFileReturnsNil(t *testing.T) {
	s, err := config.LoadSettings("")
	require.NoError(t, err)
	require.Nil(t, s)

	s, err = config.LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestLoadSettingsParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boltzc.yaml")
	body := "solver:\n  binary: /usr/local/bin/boltzsolve\n  timeout_seconds: 30\nstore:\n  kind: sqlite\n  db_path: boltzc.db\nreport:\n  pattern: \"run-%Y%m%d\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, "/usr/local/bin/boltzsolve", s.Solver.Binary)
	require.Equal(t, 30, s.Solver.TimeoutSeconds)
	require.Equal(t, "sqlite", s.Store.Kind)
	require.Equal(t, "run-%Y%m%d", s.Report.Pattern)
}

func TestWarnfWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	config.Warnf(&buf, "slow convergence after %d iterations", 5000)
	require.Equal(t, "warning: slow convergence after 5000 iterations\n", buf.String())
}

func motzkinWithFrequency() *model.System {
	freq := 2.0
	s := model.NewSystem()
	s.AddType("M", []model.Constructor{
		{Name: "Leaf", Weight: 1, Frequency: &freq},
		{Name: "Unary", Weight: 1, Args: []model.Argument{{Kind: model.ArgType, Type: "M"}}},
	})
	return s
}

func TestUseTunerAlgebraicWithFrequencyRoutes(t *testing.T) {
	s := motzkinWithFrequency()
	use, err := config.UseTuner(s, model.Algebraic, false)
	require.NoError(t, err)
	require.True(t, use)
}

func TestUseTunerRationalWithFrequencyRejectedWithoutSolver(t *testing.T) {
	s := motzkinWithFrequency()
	_, err := config.UseTuner(s, model.Rational, false)
	require.ErrorIs(t, err, config.ErrFrequencyWithoutTuner)
}

func TestUseTunerRationalWithFrequencyRoutesWhenSolverExplicit(t *testing.T) {
	s := motzkinWithFrequency()
	use, err := config.UseTuner(s, model.Rational, true)
	require.NoError(t, err)
	require.True(t, use)
}

func TestUseTunerRationalWithoutFrequencyUsesOracle(t *testing.T) {
	s := model.NewSystem()
	s.AddType("M", []model.Constructor{{Name: "Leaf", Weight: 1}})
	use, err := config.UseTuner(s, model.Rational, false)
	require.NoError(t, err)
	require.False(t, use)
}
