// Command boltzc compiles a combinatorial-system grammar file into a
// Boltzmann-sampler Go source file, following the single-command CLI
// shape of spec.md §6, flag-parsed the way the teacher's
// cmd/protogonosctl parses each of its subcommands.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"boltzc/internal/config"
	"boltzc/internal/store"
	"boltzc/internal/tuning"
	"boltzc/pkg/boltzc"
)

const version = "0.1.0"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("boltzc", flag.ContinueOnError)
	precision := fs.Float64("precision", 1e-6, "singularity bisection precision (epsilon_rho)")
	fs.Float64Var(precision, "p", 1e-6, "alias for --precision")
	eps := fs.Float64("eps", 1e-6, "fixed-point evaluation precision (epsilon_y)")
	fs.Float64Var(eps, "e", 1e-6, "alias for --eps")
	sing := fs.Float64("sing", 0, "user-supplied singularity rho0; if set (non-zero), skip bisection")
	fs.Float64Var(sing, "s", 0, "alias for --sing")
	module := fs.String("module", "Main", "emitted module's identifier")
	fs.StringVar(module, "m", "Main", "alias for --module")
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.BoolVar(showVersion, "v", false, "alias for --version")

	configPath := fs.String("config", "", "optional YAML settings file")
	storeKind := fs.String("store", "memory", "run-history store backend: memory|sqlite")
	dbPath := fs.String("db", "boltzc.db", "sqlite database path (with --store sqlite)")
	solverBinary := fs.String("solver", "", "external convex-program solver binary; absent uses the internal oracle")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Println("boltzc", version)
		return nil
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return usageError("expected exactly one grammar file argument")
	}
	inputPath := rest[0]

	settings, err := config.LoadSettings(*configPath)
	if err != nil {
		return err
	}
	if settings != nil {
		if *storeKind == "memory" && settings.Store.Kind != "" {
			*storeKind = settings.Store.Kind
		}
		if *dbPath == "boltzc.db" && settings.Store.DBPath != "" {
			*dbPath = settings.Store.DBPath
		}
		if *solverBinary == "" && settings.Solver.Binary != "" {
			*solverBinary = settings.Solver.Binary
		}
	}

	client, err := boltzc.New(boltzc.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}

	req := boltzc.CompileRequest{
		InputPath: inputPath,
		EpsRho:    *precision,
		EpsY:      *eps,
		Package:   *module,
	}
	if *sing != 0 {
		req.UserRho = sing
	}
	if *solverBinary != "" {
		req.Solver = tuning.Options{Binary: *solverBinary}
	}

	start := time.Now()
	res, err := client.Compile(ctx, req)
	if err != nil {
		return err
	}

	warn := warnWriter(os.Stderr)
	for _, w := range res.Warnings {
		config.Warnf(warn, "%s", w)
	}
	if res.WeightGCD > 1 {
		config.Warnf(warn, "all constructor weights share a common factor of %d; the grammar could be simplified", res.WeightGCD)
	}

	fmt.Printf(
		"compiled %s: classification=%s rho=%.12g run=%s emitted=%s started=%s\n",
		inputPath, res.Classification, res.Rho, res.RunID,
		humanize.Bytes(uint64(len(res.Source))), humanize.Time(start),
	)
	if err := writeEmitted(*module, res.Source); err != nil {
		return err
	}

	reportPattern := ""
	if settings != nil {
		reportPattern = settings.Report.Pattern
	}
	return writeReport(reportPattern, start, res)
}

func writeEmitted(module string, src []byte) error {
	path := module + ".go"
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Println("wrote", path)
	return nil
}

// writeReport names a per-run diagnostics file with ReportFilename (the
// strftime pattern from --config's report.pattern, or
// store.DefaultReportPattern) and records the run's classification, rho
// and emitted byte count next to the generated module.
func writeReport(pattern string, start time.Time, res boltzc.CompileResult) error {
	path := store.ReportFilename(pattern, start) + ".txt"
	body := fmt.Sprintf(
		"run=%s\nclassification=%s\nrho=%.12g\nemitted_bytes=%d\n",
		res.RunID, res.Classification, res.Rho, len(res.Source),
	)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	fmt.Println("wrote", path)
	return nil
}

// warnWriter colorizes warnings yellow when stderr is a terminal, and
// leaves them plain otherwise (piped output, CI logs).
func warnWriter(f *os.File) io.Writer {
	if isatty.IsTerminal(f.Fd()) {
		return colorWriter{f}
	}
	return f
}

type colorWriter struct{ w io.Writer }

func (c colorWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, "\x1b[33m"); err != nil {
		return 0, err
	}
	n, err := c.w.Write(p)
	if err != nil {
		return n, err
	}
	if _, err := io.WriteString(c.w, "\x1b[0m"); err != nil {
		return n, err
	}
	return n, nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: boltzc [flags] <grammar-file>", msg)
}
