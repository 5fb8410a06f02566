package cmd

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/tagl/cli/cmd/repl"
	"github.com/ardnew/tagl/log"
)

// Repl starts an interactive session evaluating one template fragment per
// line in a persistent environment.
type Repl struct {
	History bool `default:"true" help:"Persist input history in the cache directory." negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return ErrNoTerminal
	}

	var cacheDir string

	if ktx := kongContextFrom(ctx); ktx != nil && r.History {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, cacheDir, log.Default(), evalOptionsFrom(ctx)...)
}
