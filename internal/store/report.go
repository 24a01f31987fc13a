package store

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultReportPattern is the strftime pattern used when no pattern is
// supplied via config: one flat file name per run, stamped to the second.
const DefaultReportPattern = "run-%Y%m%d-%H%M%S"

// ReportFilename renders a strftime pattern against when, for naming a
// per-run emitted-source or diagnostics file (SPEC_FULL.md §2).
func ReportFilename(pattern string, when time.Time) string {
	if pattern == "" {
		pattern = DefaultReportPattern
	}
	return strftime.Format(pattern, when)
}
