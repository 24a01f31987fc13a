// Package tuning implements the Tuner Bridge (SPEC_FULL.md §6): the
// optional oracle that hands a frequency-marked system to an external
// convex-program solver and converts its answer back into the same
// parametrised-system shape the internal oracle produces.
//
// Process handling follows haricheung-agentic-shell's
// internal/tools/shell.go (exec.CommandContext, explicit buffers, no
// interleaving of the read/write phases), adapted so the full
// specification is written and the stdin pipe is closed before any
// output is read — the contract in SPEC_FULL.md §6 that avoids
// deadlocking a solver that only starts producing output once its input
// is exhausted.
package tuning

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"boltzc/internal/model"
)

// DefaultTimeout bounds a solver invocation; the teacher's shell tool
// uses the same 30s default for a foreground subprocess.
const DefaultTimeout = 30 * time.Second

// SolverDefaults mirrors spec.md §4.3's per-system-type defaults.
type SolverDefaults struct {
	Solver     string
	Epsilon    float64
	Iterations int
}

var (
	rationalDefaults  = SolverDefaults{Solver: "interior-point", Epsilon: 1e-20, Iterations: 2500}
	algebraicDefaults = SolverDefaults{Solver: "conic", Epsilon: 1e-20, Iterations: 20}
)

// DefaultsFor returns the §4.3 default solver configuration for a system
// classification.
func DefaultsFor(class model.Classification) SolverDefaults {
	if class == model.Rational {
		return rationalDefaults
	}
	return algebraicDefaults
}

// Options configures a Tune invocation.
type Options struct {
	// Binary is the external solver executable.
	Binary string

	// Class is s's true Rational/Algebraic classification, as computed by
	// analyzer.Classify; it picks both SolverDefaults (via DefaultsFor) and
	// the --system-type flag, so the two never disagree.
	Class model.Classification

	SolverDefaults

	Timeout time.Duration
}

// Tune runs the full Tuner Bridge protocol against s: serialise, spawn,
// write, close, read, parse, and convert into a model.ParametrisedSystem.
func Tune(ctx context.Context, s *model.System, opts Options) (*model.ParametrisedSystem, error) {
	spec, freqOrder, err := EncodeSpec(s)
	if err != nil {
		return nil, fmt.Errorf("tuning: encode spec: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	args := []string{
		"--solver", opts.Solver,
		"--eps", fmt.Sprintf("%g", opts.Epsilon),
		"--iterations", fmt.Sprintf("%d", opts.Iterations),
		"--system-type", classArg(opts.Class),
	}
	cmd := exec.CommandContext(ctx, opts.Binary, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %v", ErrSpawnFailed, err)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	// Write the full specification, then close stdin, before reading any
	// output: the specification is bounded and the solver is expected to
	// read it fully before producing output (SPEC_FULL.md §6).
	if _, err := stdin.Write(spec); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, fmt.Errorf("%w: write spec: %v", ErrSpawnFailed, err)
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, fmt.Errorf("%w: close stdin: %v", ErrSpawnFailed, err)
	}

	// Wait explicitly, protecting against zombies even on a parse
	// failure below.
	waitErr := cmd.Wait()
	if waitErr != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrSpawnFailed, waitErr, stderr.String())
	}

	numFreq := len(freqOrder)
	rho, u, y, err := ParseOutput(stdout.Bytes(), numFreq, len(s.Order))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseError, err)
	}

	return buildParametrised(s, freqOrder, rho, u, y)
}

func classArg(class model.Classification) string {
	if class == model.Rational {
		return "rational"
	}
	return "algebraic"
}
