package lang

import (
	"context"
	"log/slog"
)

// Eval evaluates n in env for output.
func Eval(ctx context.Context, env *Env, n Node) (Result, error) {
	switch t := n.(type) {
	case *Value:
		text := ToString(evalLiteral(env, t.Literal))

		return Output{Node: env.config.sink.CreateText(text)}, nil

	case *Comment:
		return nil, evalComment(ctx, env, t)

	case *Define:
		name := ToString(evalLiteral(env, t.Name))
		params := make([]string, len(t.Params))

		for i, p := range t.Params {
			params[i] = ToString(evalLiteral(env, p))
		}

		env.DefineFunc(name, &UserFunc{Name: name, Params: params, Body: t.Body})

		return nil, nil

	case *Let:
		scope := env.Enter()

		for _, lit := range t.Bindings {
			if b, ok := lit.(Binding); ok {
				scope.Set(b.Name, b.Eval(scope))
			}
		}

		return evalBody(ctx, scope, t.Body)

	case *Cond:
		return evalCond(ctx, env, t)

	case *If:
		if !holds(env, t.Cond) {
			return nil, nil
		}

		return evalBody(ctx, env, t.Body)

	case *Else:
		return evalBody(ctx, env, t.Body)

	case *For:
		return evalFor(ctx, env, t)

	case *Call:
		return evalCall(ctx, env, t)

	case *Element:
		sink := env.config.sink
		node := sink.CreateElement(t.Tag)

		for _, a := range t.Attrs {
			sink.SetAttribute(node, a.Name, a.Value)
		}

		out, err := evalBody(ctx, env, t.Body)
		if err != nil {
			return nil, err
		}

		Flatten(sink, node, out)

		return Output{Node: node}, nil

	default:
		return nil, unknownNode(n)
	}
}

// EvalValue evaluates n for a scalar. Only a Value node has one; every other
// node yields nil without side effects.
func EvalValue(_ context.Context, env *Env, n Node) (any, error) {
	switch t := n.(type) {
	case *Value:
		return evalLiteral(env, t.Literal), nil

	case *Comment, *Define, *Let, *Cond, *If, *Else, *For, *Call, *Element:
		return nil, nil

	default:
		return nil, unknownNode(n)
	}
}

func unknownNode(n Node) error {
	return ErrUnknownNode.With(slog.String("type", typeName(n)))
}

func evalLiteral(env *Env, lit Literal) any {
	if lit == nil {
		return nil
	}

	return lit.Eval(env)
}

func evalBody(ctx context.Context, env *Env, body []Node) (Result, error) {
	if len(body) == 0 {
		return nil, nil
	}

	out := make(List, 0, len(body))

	for _, n := range body {
		r, err := Eval(ctx, env, n)
		if err != nil {
			return nil, err
		}

		out = append(out, r)
	}

	return out, nil
}

func evalComment(ctx context.Context, env *Env, c *Comment) error {
	values := make([]any, 0, len(c.Body))

	for _, n := range c.Body {
		v, err := EvalValue(ctx, env, n)
		if err != nil {
			return err
		}

		values = append(values, v)
	}

	env.config.logger.InfoContext(ctx, "comment", slog.Any("values", values))

	return nil
}

// holds reports whether the first condition literal is truthy.
// Further literals are reserved and an IF without one never holds.
func holds(env *Env, cond []Literal) bool {
	if len(cond) == 0 {
		return false
	}

	return IsTruthy(evalLiteral(env, cond[0]))
}

// evalCond walks the children in order. The first Else, or the first If
// whose condition holds, decides the result. Children passed over are still
// evaluated and their output discarded.
func evalCond(ctx context.Context, env *Env, c *Cond) (Result, error) {
	for _, n := range c.Body {
		switch t := n.(type) {
		case *Else:
			return Eval(ctx, env, t)

		case *If:
			if holds(env, t.Cond) {
				return evalBody(ctx, env, t.Body)
			}
		}

		if _, err := Eval(ctx, env, n); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

// evalFor binds each element in turn within a single child scope. Arrays
// yield their elements and strings yield their characters; other values
// yield nothing.
func evalFor(ctx context.Context, env *Env, f *For) (Result, error) {
	name := ToString(evalLiteral(env, f.Bind))
	iter := evalLiteral(env, f.Iter)

	var items []any

	switch t := iter.(type) {
	case []any:
		items = t

	case string:
		for _, r := range t {
			items = append(items, string(r))
		}

	default:
		env.config.logger.WarnContext(ctx, "value is not iterable",
			slog.String("name", name),
			slog.String("type", typeName(iter)),
		)

		return nil, nil
	}

	scope := env.Enter()
	out := make(List, 0, len(items))

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scope.Set(name, item)

		r, err := evalBody(ctx, scope, f.Body)
		if err != nil {
			return nil, err
		}

		out = append(out, r)
	}

	return out, nil
}

func evalCall(ctx context.Context, env *Env, c *Call) (Result, error) {
	name := ToString(evalLiteral(env, c.Func))

	fn, ok := env.ResolveFunc(name)
	if !ok {
		env.config.logger.WarnContext(ctx, "function not found",
			slog.String("name", name),
		)

		return nil, nil
	}

	args := make([]any, len(c.Args))
	for i, lit := range c.Args {
		args[i] = evalLiteral(env, lit)
	}

	env.config.logger.TraceContext(ctx, "call",
		slog.String("name", name),
		slog.Int("args", len(args)),
	)

	return fn.Invoke(ctx, env, args)
}
