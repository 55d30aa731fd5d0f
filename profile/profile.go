package profile

import (
	"log/slog"
	"strings"

	"github.com/ardnew/tabry/pkg"
)

// ErrMode is returned by [Start] for a mode not listed by [Modes].
var ErrMode = pkg.NewError("unsupported profile mode")

// Profiler is a running profiler.
type Profiler interface {
	// Stop flushes the profile and stops profiling.
	Stop()
}

type nop struct{}

func (nop) Stop() {}

// Start starts the profiler of the given mode, writing its output to dir or
// to a temporary directory when dir is empty. The empty mode starts nothing.
func Start(mode, dir string) (Profiler, error) {
	if mode == "" {
		return nop{}, nil
	}

	p, ok := start(mode, dir)
	if !ok {
		return nil, ErrMode.With(
			slog.String("mode", mode),
			slog.String("supported", strings.Join(Modes(), ",")))
	}

	return p, nil
}
