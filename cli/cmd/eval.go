package cmd

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/ardnew/tagl/log"
	"github.com/ardnew/tagl/markup"
)

// Eval renders template sources to HTML.
type Eval struct {
	Source []string `arg:"" help:"Template file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	nodes, err := parseSources(ctx, e.Source)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	err = markup.RenderNodes(ctx, &buf, nodes, evalOptionsFrom(ctx)...)
	if err != nil {
		return err
	}

	if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}

	log.TraceContext(ctx, "rendered",
		slog.Int("sources", len(e.Source)),
		slog.Int("bytes", buf.Len()),
	)

	if _, err := buf.WriteTo(outputFrom(ctx)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
