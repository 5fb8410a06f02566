package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/tagl/lang"
)

// Fmt parses template sources and prints their syntax tree.
type Fmt struct {
	Tree Tree `cmd:"" default:"withargs" help:"Print an indented outline (default)."`
	JSON JSON `cmd:""                    help:"Print as JSON."`
	YAML YAML `cmd:""                    help:"Print as YAML."`
}

// Tree prints the syntax tree as an indented outline.
type Tree struct {
	Source []string `arg:"" help:"Template file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the tree command.
func (f *Tree) Run(ctx context.Context) error {
	nodes, err := parseSources(ctx, f.Source)
	if err != nil {
		return err
	}

	if err := lang.Print(ctx, outputFrom(ctx), nodes...); err != nil {
		return ErrWriteOutput.With(slog.String("format", "tree")).Wrap(err)
	}

	return nil
}

// JSON prints the syntax tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width (0 for compact output)" short:"i"`

	Source []string `arg:"" help:"Template file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the json command.
func (f *JSON) Run(ctx context.Context) error {
	nodes, err := parseSources(ctx, f.Source)
	if err != nil {
		return err
	}

	if err := lang.FormatJSON(ctx, outputFrom(ctx), f.Indent, nodes...); err != nil {
		return ErrWriteOutput.With(slog.String("format", "json")).Wrap(err)
	}

	return nil
}

// YAML prints the syntax tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width (0 for flow style)" short:"i"`

	Source []string `arg:"" help:"Template file(s) or '-' for stdin" name:"source" optional:""`
}

// Run executes the yaml command.
func (f *YAML) Run(ctx context.Context) error {
	nodes, err := parseSources(ctx, f.Source)
	if err != nil {
		return err
	}

	if err := lang.FormatYAML(ctx, outputFrom(ctx), f.Indent, nodes...); err != nil {
		return ErrWriteOutput.With(slog.String("format", "yaml")).Wrap(err)
	}

	return nil
}
