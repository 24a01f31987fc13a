// Package config loads the optional YAML settings file and renders the
// advisory-warning helper the cmd/boltzc command uses, following
// bobbyhouse-iguana's settings.go (LoadSettings returns nil, nil when the
// file is absent) and the teacher's plain fmt.Fprintln-based CLI logging.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the optional --config YAML file's shape: defaults for the
// Tuner Bridge, the run-history store, and report-file naming.
type Settings struct {
	Solver SolverSettings `yaml:"solver"`
	Store  StoreSettings  `yaml:"store"`
	Report ReportSettings `yaml:"report"`
}

// SolverSettings configures the external convex-program solver process.
type SolverSettings struct {
	Binary         string `yaml:"binary"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StoreSettings configures the run-history backend.
type StoreSettings struct {
	Kind   string `yaml:"kind"`
	DBPath string `yaml:"db_path"`
}

// ReportSettings configures run-report file naming.
type ReportSettings struct {
	Pattern string `yaml:"pattern"`
}

// LoadSettings reads path as YAML. It returns (nil, nil), not an error,
// when path is empty or the file does not exist, so callers can treat an
// absent --config flag the same as an absent file.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}

// Warnf writes an advisory diagnostic to w (never affecting exit status),
// matching the teacher's bare fmt.Fprintln(os.Stderr, ...) style — this
// repository carries no logging library, per SPEC_FULL.md §1.
func Warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "warning: "+format+"\n", args...)
}
