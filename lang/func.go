package lang

import (
	"context"
	"log/slog"
)

// Func is anything callable by a DO tag.
type Func interface {
	// Invoke calls the function from env with the evaluated call arguments.
	Invoke(ctx context.Context, env *Env, args []any) (Result, error)
}

// UserFunc is a function defined by a DEFN tag.
type UserFunc struct {
	Name   string
	Params []string
	Body   []Node
}

// Invoke evaluates the body in a new boundary scope under env with each
// parameter bound to the argument at its position. Parameters without an
// argument stay unbound and extra arguments are ignored.
//
// The value left on top of the function's own stack, or null if the stack
// is empty, is pushed onto the caller's stack. The rendered body is the
// call's output.
func (f *UserFunc) Invoke(
	ctx context.Context,
	env *Env,
	args []any,
) (Result, error) {
	scope := env.EnterBoundary()

	if limit := scope.config.maxDepth; limit > 0 && scope.depth > limit {
		return nil, ErrMaxDepthExceeded.With(
			slog.String("function", f.Name),
			slog.Int("limit", limit),
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, param := range f.Params {
		if i >= len(args) {
			break
		}

		scope.Set(param, args[i])
	}

	out, err := evalBody(ctx, scope, f.Body)
	if err != nil {
		return nil, err
	}

	var ret any
	if scope.stack.Len() > 0 {
		ret, _ = scope.Pop()
	}

	env.Push(ret)

	return out, nil
}

// NativeFunc is a function implemented by the host.
//
// With Arity zero, Op receives the evaluated call arguments. Otherwise the
// call arguments are ignored and Op receives Arity operands popped off the
// caller's stack, in push order.
type NativeFunc struct {
	Op    func(env *Env, args []any) (any, error)
	Name  string
	Arity int
}

// Invoke runs the native operation. A nil result produces no output.
func (f *NativeFunc) Invoke(
	_ context.Context,
	env *Env,
	args []any,
) (Result, error) {
	if f.Arity > 0 {
		args = make([]any, f.Arity)

		for i := f.Arity - 1; i >= 0; i-- {
			v, err := env.Pop()
			if err != nil {
				return nil, ErrStackUnderflow.With(
					slog.String("function", f.Name),
					slog.Int("arity", f.Arity),
				)
			}

			args[i] = v
		}
	}

	v, err := f.Op(env, args)
	if err != nil || v == nil {
		return nil, err
	}

	return Scalar{Value: v}, nil
}
