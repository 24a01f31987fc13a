package emitter

import (
	"fmt"
	"strings"

	"boltzc/internal/model"
)

// Options controls the shape of emitted source: which ancillary surfaces
// (an example `main` entry point, `String()` methods) get generated, and
// the package the emitted file declares itself in.
type Options struct {
	Package  string
	WithIO   bool
	WithShow bool
}

// ResolveOptions reads the emitter annotations off s (withIO, withShow),
// coercing them with the truthy-token rule SPEC_FULL.md §8 settles: only
// "true"/"false", case-insensitive, are accepted; anything else is a
// ParseError. Both flags default to true (spec.md §6) when the
// annotation key is absent entirely.
func ResolveOptions(s *model.System, pkg string) (Options, error) {
	opts := Options{Package: pkg}

	withIO, err := truthy(s.Annotations["withIO"], true)
	if err != nil {
		return Options{}, fmt.Errorf("withIO: %w", err)
	}
	opts.WithIO = withIO

	withShow, err := truthy(s.Annotations["withShow"], true)
	if err != nil {
		return Options{}, fmt.Errorf("withShow: %w", err)
	}
	opts.WithShow = withShow

	if opts.WithIO {
		opts.Package = "main"
	}
	return opts, nil
}

// ErrBadAnnotation is wrapped into every truthy-coercion failure.
var ErrBadAnnotation = fmt.Errorf("emitter: annotation is not a recognised truthy token")

func truthy(token string, def bool) (bool, error) {
	if token == "" {
		return def, nil
	}
	switch strings.ToLower(token) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrBadAnnotation, token)
	}
}
