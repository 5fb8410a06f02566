package lang

import "context"

// Sink creates and links output nodes. Nodes are opaque to the evaluator.
type Sink interface {
	CreateElement(tag string) any
	SetAttribute(node any, name, value string)
	CreateText(text string) any
	AppendChild(parent, child any)
}

// Result is the rendering of one evaluated node: nil (no output), [List],
// [Output] or [Scalar].
type Result interface {
	result()
}

type (
	// List is an ordered sequence of results.
	List []Result

	// Output is a node created through the sink.
	Output struct {
		Node any
	}

	// Scalar is a runtime value rendered as a text leaf.
	Scalar struct {
		Value any
	}
)

func (List) result()   {}
func (Output) result() {}
func (Scalar) result() {}

// Flatten appends the nodes of r to parent in order. Nil results are
// skipped and lists are flattened recursively. A scalar array is expanded
// the same way as a list, one text leaf per non-nil element.
func Flatten(sink Sink, parent any, r Result) {
	switch t := r.(type) {
	case nil:
	case List:
		for _, e := range t {
			Flatten(sink, parent, e)
		}
	case Output:
		if t.Node != nil {
			sink.AppendChild(parent, t.Node)
		}
	case Scalar:
		switch v := t.Value.(type) {
		case nil:
		case []any:
			for _, e := range v {
				Flatten(sink, parent, Scalar{Value: e})
			}
		default:
			sink.AppendChild(parent, sink.CreateText(ToString(v)))
		}
	}
}

// Render evaluates each node in e and appends its output to parent.
// Evaluation stops at the first error; output of the preceding nodes has
// already been appended.
func (e *Env) Render(ctx context.Context, parent any, nodes ...Node) error {
	for _, n := range nodes {
		r, err := Eval(ctx, e, n)
		if err != nil {
			return err
		}

		Flatten(e.config.sink, parent, r)
	}

	return nil
}

// Render evaluates nodes in a new root environment writing through sink.
func Render(
	ctx context.Context,
	sink Sink,
	parent any,
	nodes []Node,
	opts ...Option,
) error {
	return NewEnv(append(opts, WithSink(sink))...).Render(ctx, parent, nodes...)
}

type discard struct{}

func (discard) CreateElement(string) any         { return nil }
func (discard) SetAttribute(any, string, string) {}
func (discard) CreateText(string) any            { return nil }
func (discard) AppendChild(any, any)             {}
