package lang

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ardnew/tagl/log"
)

// testNode is a minimal output tree rendered as compact markup.
type testNode struct {
	tag      string
	text     string
	attrs    []Attr
	children []*testNode
}

func (n *testNode) String() string {
	var sb strings.Builder
	n.write(&sb)

	return sb.String()
}

func (n *testNode) write(sb *strings.Builder) {
	if n.tag == "" {
		sb.WriteString(n.text)

		for _, c := range n.children {
			c.write(sb)
		}

		return
	}

	sb.WriteString("<" + n.tag)

	for _, a := range n.attrs {
		sb.WriteString(" " + a.Name + `="` + a.Value + `"`)
	}

	sb.WriteString(">")

	for _, c := range n.children {
		c.write(sb)
	}

	sb.WriteString("</" + n.tag + ">")
}

type testSink struct{}

func (testSink) CreateElement(tag string) any { return &testNode{tag: tag} }
func (testSink) CreateText(text string) any   { return &testNode{text: text} }

func (testSink) SetAttribute(node any, name, value string) {
	n := node.(*testNode)
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

func (testSink) AppendChild(parent, child any) {
	p := parent.(*testNode)
	p.children = append(p.children, child.(*testNode))
}

// harness couples a root environment with captured JSON diagnostics.
type harness struct {
	env  *Env
	logs bytes.Buffer
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	h := &harness{}
	logger := log.Make(&h.logs,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelDebug),
	)

	h.env = NewEnv(append([]Option{WithLogger(logger), WithSink(testSink{})}, opts...)...)

	return h
}

// render evaluates nodes and returns the output markup.
func (h *harness) render(t *testing.T, nodes ...Node) string {
	t.Helper()

	out, err := h.tryRender(t.Context(), nodes...)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	return out
}

func (h *harness) tryRender(ctx context.Context, nodes ...Node) (string, error) {
	root := &testNode{}
	err := h.env.Render(ctx, root, nodes...)

	return root.String(), err
}

// stack returns the root operand stack contents.
func (h *harness) stack() []any { return h.env.Stack().Values() }
