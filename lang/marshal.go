package lang

// ToNative converts nodes to plain maps and slices for encoding.
func ToNative(nodes ...Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeToNative(n))
	}

	return out
}

func nodeToNative(n Node) map[string]any {
	m := map[string]any{"kind": n.Kind().String()}

	if el, ok := n.(*Element); ok {
		m["tag"] = el.Tag

		if len(el.Attrs) > 0 {
			attrs := make([]any, len(el.Attrs))
			for i, a := range el.Attrs {
				attrs[i] = map[string]any{"name": a.Name, "value": a.Value}
			}

			m["attrs"] = attrs
		}
	}

	if lits := Literals(n); len(lits) > 0 {
		args := make([]any, len(lits))
		for i, lit := range lits {
			args[i] = literalToNative(lit)
		}

		m["args"] = args
	}

	if body := Children(n); len(body) > 0 {
		m["body"] = ToNative(body...)
	}

	return m
}

func literalToNative(lit Literal) any {
	switch t := lit.(type) {
	case nil:
		return nil
	case Number:
		return float64(t)
	case Bool:
		return bool(t)
	case String:
		return string(t)
	case Var:
		return map[string]any{"var": string(t)}
	case Binding:
		return map[string]any{"name": t.Name, "value": literalToNative(t.Value)}
	}

	return lit.String()
}
