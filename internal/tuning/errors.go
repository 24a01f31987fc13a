package tuning

import "fmt"

// ErrSpawnFailed is returned when the external solver process cannot be
// started, or exits non-zero, or its pipes cannot be wired.
var ErrSpawnFailed = fmt.Errorf("tuning: solver process failed")

// ErrParseError is returned when the solver's stdout cannot be parsed as
// the expected rho/u/y token stream.
var ErrParseError = fmt.Errorf("tuning: cannot parse solver output")

// ErrRejected is returned when the solver ran and produced output, but
// that output contains non-finite values.
var ErrRejected = fmt.Errorf("tuning: solver did not yield finite values")
