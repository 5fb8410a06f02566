package lang

import "github.com/ardnew/tagl/log"

// DefaultMaxDepth is the default limit on nested user function calls.
// Users may modify this before creating an environment to change the default.
var DefaultMaxDepth = 1000

type config struct {
	logger   log.Logger
	sink     Sink
	globals  map[string]any
	maxDepth int
}

// Option configures a root environment.
type Option func(*config)

// WithLogger sets the logger receiving comment and warning diagnostics.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSink sets the sink output nodes are created through.
// Without one, output nodes are discarded.
func WithSink(sink Sink) Option {
	return func(c *config) {
		c.sink = sink
	}
}

// WithMaxDepth limits how deeply user function calls may nest.
// A depth of zero or less removes the limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithGlobals binds each entry of vars as a variable in the root scope.
// Repeated use merges the maps; later entries win.
func WithGlobals(vars map[string]any) Option {
	return func(c *config) {
		if c.globals == nil {
			c.globals = make(map[string]any, len(vars))
		}

		for name, value := range vars {
			c.globals[name] = value
		}
	}
}

func makeConfig(opts ...Option) *config {
	c := &config{
		sink:     discard{},
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.sink == nil {
		c.sink = discard{}
	}

	return c
}
