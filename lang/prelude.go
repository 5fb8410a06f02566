package lang

import (
	"log/slog"
	"math"
)

// MaxRange bounds the number of elements the range native may produce.
var MaxRange = 1 << 20

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}

	return nil
}

// stackOp adapts a binary operator to a native that pushes its result.
func stackOp(op func(a, b any) any) func(*Env, []any) (any, error) {
	return func(env *Env, operand []any) (any, error) {
		env.Push(op(operand[0], operand[1]))

		return nil, nil
	}
}

func arith(op func(x, y float64) float64) func(a, b any) any {
	return func(a, b any) any {
		return op(ToNumber(primitive(a)), ToNumber(primitive(b)))
	}
}

func ordered(test func(c int) bool) func(a, b any) any {
	return func(a, b any) any {
		c, ok := order(a, b)

		return ok && test(c)
	}
}

func natives() []*NativeFunc {
	return []*NativeFunc{
		{Name: "push", Op: func(env *Env, args []any) (any, error) {
			env.Push(arg(args, 0))

			return nil, nil
		}},
		{Name: "pop", Op: func(env *Env, _ []any) (any, error) {
			v, err := env.Pop()
			if err != nil {
				return nil, ErrStackUnderflow.With(slog.String("function", "pop"))
			}

			return v, nil
		}},
		{Name: "set", Op: func(env *Env, args []any) (any, error) {
			v, err := env.Pop()
			if err != nil {
				return nil, ErrStackUnderflow.With(slog.String("function", "set"))
			}

			env.Set(ToString(arg(args, 0)), v)

			return nil, nil
		}},
		{Name: "range", Op: nativeRange},

		{Name: "add", Arity: 2, Op: stackOp(plus)},
		{Name: "sub", Arity: 2, Op: stackOp(arith(func(x, y float64) float64 { return x - y }))},
		{Name: "mul", Arity: 2, Op: stackOp(arith(func(x, y float64) float64 { return x * y }))},
		{Name: "div", Arity: 2, Op: stackOp(arith(func(x, y float64) float64 { return x / y }))},
		{Name: "rem", Arity: 2, Op: stackOp(arith(math.Mod))},

		{Name: "eq", Arity: 2, Op: stackOp(func(a, b any) any { return strictEqual(a, b) })},
		{Name: "ne", Arity: 2, Op: stackOp(func(a, b any) any { return !strictEqual(a, b) })},
		{Name: "lt", Arity: 2, Op: stackOp(ordered(func(c int) bool { return c < 0 }))},
		{Name: "le", Arity: 2, Op: stackOp(ordered(func(c int) bool { return c <= 0 }))},
		{Name: "gt", Arity: 2, Op: stackOp(ordered(func(c int) bool { return c > 0 }))},
		{Name: "ge", Arity: 2, Op: stackOp(ordered(func(c int) bool { return c >= 0 }))},

		{Name: "and", Arity: 2, Op: stackOp(func(a, b any) any { return IsTruthy(a) && IsTruthy(b) })},
		{Name: "or", Arity: 2, Op: stackOp(func(a, b any) any { return IsTruthy(a) || IsTruthy(b) })},
	}
}

// nativeRange pushes the numbers from a up to but excluding b.
func nativeRange(env *Env, args []any) (any, error) {
	if len(args) < 2 {
		env.Push([]any{})

		return nil, nil
	}

	lo, hi := ToNumber(args[0]), ToNumber(args[1])
	if math.IsNaN(lo) || math.IsNaN(hi) || lo >= hi {
		env.Push([]any{})

		return nil, nil
	}

	n := math.Ceil(hi - lo)
	if n > float64(MaxRange) {
		return nil, ErrRangeLimit.With(
			slog.Float64("from", lo),
			slog.Float64("to", hi),
			slog.Int("limit", MaxRange),
		)
	}

	seq := make([]any, 0, int(n))
	for i := range int(n) {
		seq = append(seq, lo+float64(i))
	}

	env.Push(seq)

	return nil, nil
}

func bindPrelude(env *Env) {
	for _, fn := range natives() {
		env.funcs[fn.Name] = fn
	}
}
