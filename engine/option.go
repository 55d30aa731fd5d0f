package engine

import "github.com/ardnew/tabry/log"

// Option configures a [Machine] or a [Finder].
type Option func(*config)

type config struct {
	logger log.Logger
	shell  Shell
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithShell replaces the runner used for shell options. It has no effect on
// a [Machine].
func WithShell(shell Shell) Option {
	return func(c *config) {
		c.shell = shell
	}
}

func makeConfig(opts ...Option) config {
	c := config{shell: ExecShell}
	for _, opt := range opts {
		opt(&c)
	}

	if c.shell == nil {
		c.shell = ExecShell
	}

	return c
}
