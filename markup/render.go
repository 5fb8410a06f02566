package markup

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/ardnew/tagl/lang"
)

// Render parses a template from r, evaluates it in a new root environment
// and writes the resulting HTML to w. Nothing is written if evaluation
// fails.
func Render(ctx context.Context, w io.Writer, r io.Reader, opts ...lang.Option) error {
	nodes, err := Parse(r)
	if err != nil {
		return err
	}

	return RenderNodes(ctx, w, nodes, opts...)
}

// RenderString is [Render] for template source text.
func RenderString(ctx context.Context, w io.Writer, src string, opts ...lang.Option) error {
	return Render(ctx, w, strings.NewReader(src), opts...)
}

// RenderNodes evaluates parsed nodes and writes the resulting HTML to w.
func RenderNodes(ctx context.Context, w io.Writer, nodes []lang.Node, opts ...lang.Option) error {
	sink := NewSink()
	root := sink.Fragment()

	if err := lang.Render(ctx, sink, root, nodes, opts...); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Write(&buf, root); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)

	return err
}
