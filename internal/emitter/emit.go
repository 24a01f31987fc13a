package emitter

import (
	"bytes"
	"fmt"
	"go/format"

	"boltzc/internal/model"
	"boltzc/internal/planner"
)

// Emit renders the compiled system as Go source: a sampler package (or a
// runnable `main`, under WithIO) implementing the plan's branching tables
// and list generators, gofmt-ed before being returned.
func Emit(s *model.System, ps *model.ParametrisedSystem, plan *planner.Plan, opts Options, runID string) ([]byte, error) {
	doc, err := buildDoc(s, ps, plan, opts, runID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := sourceTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("emitter: render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("emitter: emitted source does not gofmt: %w", err)
	}
	return formatted, nil
}
