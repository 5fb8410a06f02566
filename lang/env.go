package lang

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/tagl/log"
)

// Stack is an operand stack shared by every scope between two boundaries.
type Stack struct {
	items []any
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v any) { s.items = append(s.items, v) }

// Pop removes and returns the top of the stack.
// It returns [ErrStackUnderflow] when the stack is empty.
func (s *Stack) Pop() (any, error) {
	n := len(s.items)
	if n == 0 {
		return nil, ErrStackUnderflow
	}

	v := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]

	return v, nil
}

// Len returns the number of operands on the stack.
func (s *Stack) Len() int { return len(s.items) }

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []any { return slices.Clone(s.items) }

// Env is one scope in the evaluation environment.
type Env struct {
	parent   *Env
	vars     map[string]any
	funcs    map[string]Func
	stack    *Stack
	config   *config
	boundary bool
	depth    int
}

// NewEnv returns a root scope with the native functions bound.
// Globals supplied by [WithGlobals] are bound as root variables.
func NewEnv(opts ...Option) *Env {
	cfg := makeConfig(opts...)

	env := &Env{
		vars:     make(map[string]any, len(cfg.globals)),
		funcs:    make(map[string]Func),
		stack:    &Stack{},
		config:   cfg,
		boundary: true,
	}

	for name, value := range cfg.globals {
		env.vars[name] = normalize(value)
	}

	bindPrelude(env)

	return env
}

func (e *Env) child(boundary bool) *Env {
	c := &Env{
		parent:   e,
		vars:     make(map[string]any),
		funcs:    make(map[string]Func),
		stack:    e.stack,
		config:   e.config,
		boundary: boundary,
		depth:    e.depth,
	}

	if boundary {
		c.stack = &Stack{}
		c.depth++
	}

	return c
}

// Enter returns a child scope sharing this scope's operand stack.
func (e *Env) Enter() *Env { return e.child(false) }

// EnterBoundary returns a child scope with a fresh, empty operand stack.
// Variable lookup from the child does not see past it.
func (e *Env) EnterBoundary() *Env { return e.child(true) }

// IsBoundary reports whether the scope was created by [Env.EnterBoundary]
// or is the root.
func (e *Env) IsBoundary() bool { return e.boundary }

// Depth returns the number of boundaries between the scope and the root.
func (e *Env) Depth() int { return e.depth }

// Set binds name in this scope, shadowing any outer binding.
func (e *Env) Set(name string, value any) { e.vars[name] = value }

// Lookup finds name in this scope or its ancestors up to and including the
// nearest boundary.
func (e *Env) Lookup(name string) (any, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}

		if s.boundary {
			break
		}
	}

	return nil, false
}

// Get returns the value bound to name, or def if it is not visible.
func (e *Env) Get(name string, def any) any {
	if v, ok := e.Lookup(name); ok {
		return v
	}

	return def
}

// DefineFunc registers fn under name in this scope.
func (e *Env) DefineFunc(name string, fn Func) {
	e.config.logger.Trace("define function", slog.String("name", name))
	e.funcs[name] = fn
}

// ResolveFunc finds name in this scope or any ancestor, boundaries included.
func (e *Env) ResolveFunc(name string) (Func, bool) {
	for s := e; s != nil; s = s.parent {
		if fn, ok := s.funcs[name]; ok {
			return fn, true
		}
	}

	return nil, false
}

// FuncNames returns the sorted names of every function visible from the
// scope.
func (e *Env) FuncNames() []string {
	seen := make(map[string]Func)
	for s := e; s != nil; s = s.parent {
		maps.Copy(seen, s.funcs)
	}

	return sortedKeys(seen)
}

// Push pushes v onto the scope's operand stack.
func (e *Env) Push(v any) { e.stack.Push(v) }

// Pop pops the top of the scope's operand stack.
func (e *Env) Pop() (any, error) { return e.stack.Pop() }

// Stack returns the scope's operand stack.
func (e *Env) Stack() *Stack { return e.stack }

// Logger returns the logger used for diagnostics.
func (e *Env) Logger() log.Logger { return e.config.logger }

// Sink returns the sink output nodes are created through.
func (e *Env) Sink() Sink { return e.config.sink }

// normalize converts host numbers to float64 and rebuilds slices as []any so
// values from outside the evaluator follow the same rules as literals.
func normalize(v any) any {
	if f, ok := numeric(v); ok {
		return f
	}

	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}

		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}

		return out
	case []int:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = float64(e)
		}

		return out
	case []float64:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}

		return out
	}

	return v
}
