// Package boltzc is the public facade over the compiler's internal
// packages, grounded on the teacher's pkg/protogonos (Client, opts-struct
// constructor, store-backed Close/Init).
package boltzc

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"boltzc/internal/analyzer"
	"boltzc/internal/config"
	"boltzc/internal/emitter"
	"boltzc/internal/grammar"
	"boltzc/internal/model"
	"boltzc/internal/oracle"
	"boltzc/internal/planner"
	"boltzc/internal/store"
	"boltzc/internal/tuning"
)

const defaultDBPath = "boltzc.db"

// Options configures a Client.
type Options struct {
	StoreKind string
	DBPath    string
}

// Client is the compiler's embeddable entry point: parse, classify,
// parametrise (oracle or tuner), plan, emit — recording each run.
type Client struct {
	store store.Store
}

// New constructs a Client, wiring its run-history store the same way the
// teacher's pkg/protogonos.New wires storage.NewStore.
func New(opts Options) (*Client, error) {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	st, err := store.NewStore(opts.StoreKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := st.Init(context.Background()); err != nil {
		return nil, err
	}
	return &Client{store: st}, nil
}

// CompileRequest describes one compile invocation.
type CompileRequest struct {
	// InputPath names the source grammar file; used for diagnostics and
	// store rows. If Source is nil, InputPath is also read from disk.
	InputPath string
	Source    io.Reader

	EpsRho float64
	EpsY   float64

	// Solver, when its Binary is set, routes algebraic systems and
	// frequency-marked rational systems through the Tuner Bridge; without
	// it a frequency-marked rational system is rejected (SPEC_FULL.md §9).
	Solver  tuning.Options
	UserRho *float64

	Package string

	TargetSize int
}

// CompileResult is what a compile run produced.
type CompileResult struct {
	RunID          string
	Classification model.Classification
	Rho            float64
	Source         []byte
	Warnings       []string
	WeightGCD      int64
}

// Compile runs the full pipeline: parse, validate, classify, parametrise,
// plan, emit, and record the run.
func (c *Client) Compile(ctx context.Context, req CompileRequest) (CompileResult, error) {
	sys, err := c.parse(req)
	if err != nil {
		return CompileResult{}, err
	}
	sys.Source = req.InputPath
	if err := sys.Validate(); err != nil {
		return CompileResult{}, err
	}

	ar, err := analyzer.Classify(sys)
	if err != nil {
		return CompileResult{}, err
	}

	useTuner, err := config.UseTuner(sys, ar.Class, req.Solver.Binary != "")
	if err != nil {
		return CompileResult{}, err
	}

	var ps *model.ParametrisedSystem
	if useTuner {
		req.Solver.Class = ar.Class
		if req.Solver.SolverDefaults == (tuning.SolverDefaults{}) {
			req.Solver.SolverDefaults = tuning.DefaultsFor(ar.Class)
		}
		ps, err = tuning.Tune(ctx, sys, req.Solver)
		if err != nil {
			return CompileResult{}, err
		}
	} else if req.UserRho != nil {
		res, err := oracle.EvaluateAt(sys, *req.UserRho, req.EpsY)
		if err != nil {
			return CompileResult{}, err
		}
		ps = res.ToParametrisedSystem(sys)
	} else {
		res, err := oracle.FindRho(sys, req.EpsRho, req.EpsY)
		if err != nil {
			return CompileResult{}, err
		}
		ps = res.ToParametrisedSystem(sys)
	}

	plan, err := planner.BuildFromAnalysis(ps, ar)
	if err != nil {
		return CompileResult{}, err
	}

	opts, err := emitter.ResolveOptions(sys, req.Package)
	if err != nil {
		return CompileResult{}, err
	}

	runID := uuid.NewString()
	src, err := emitter.Emit(sys, ps, plan, opts, runID)
	if err != nil {
		return CompileResult{}, err
	}

	record := store.Record{
		RunID:          runID,
		InputPath:      req.InputPath,
		Classification: ar.Class.String(),
		Rho:            ps.Rho,
		EmittedModule:  opts.Package,
		EmittedBytes:   len(src),
		CreatedAt:      time.Now(),
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return CompileResult{}, fmt.Errorf("boltzc: record run: %w", err)
	}

	return CompileResult{
		RunID:          runID,
		Classification: ar.Class,
		Rho:            ps.Rho,
		Source:         src,
		Warnings:       ps.Warnings,
		WeightGCD:      sys.WeightGCD(),
	}, nil
}

// Runs lists every recorded compile run.
func (c *Client) Runs(ctx context.Context) ([]store.Record, error) {
	return c.store.ListRuns(ctx)
}

func (c *Client) parse(req CompileRequest) (*model.System, error) {
	if req.Source != nil {
		return grammar.Parse(req.Source)
	}
	f, err := os.Open(req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("boltzc: open %s: %w", req.InputPath, err)
	}
	defer f.Close()
	return grammar.Parse(f)
}
