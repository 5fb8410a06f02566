package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tagl/cli/cmd"
	"github.com/ardnew/tagl/lang"
	"github.com/ardnew/tagl/log"
	"github.com/ardnew/tagl/pkg"
)

// CLI is the top-level command-line interface for tagl.
type CLI struct {
	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Path     []string `help:"Directory searched for relative template sources" name:"path"      placeholder:"DIR"       sep:"none" short:"I" type:"path"`
	Define   []string `help:"Bind a global variable to an expression result"    name:"define"    placeholder:"NAME=EXPR" sep:"none" short:"D"`
	MaxDepth int      `help:"Maximum nested function call depth (0 disables)"   name:"max-depth" default:"${maxDepth}"`

	Init cmd.Init `cmd:"" help:"Initialize configuration file"`
	Fmt  cmd.Fmt  `cmd:"" help:"Print the syntax tree of a template"`
	Repl cmd.Repl `cmd:"" help:"Evaluate templates interactively"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Render templates to HTML"`
}

// Run executes the tagl CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
		"version":            strings.TrimSpace(pkg.Version),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Boolean logger flags do not pass through TextUnmarshaler, so apply all
	// of them before kong reports any parse errors.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	globals, err := lang.ParseGlobals(cli.Define)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSearchPath(ctx, searchPath(cli.Path...))
	ctx = cmd.WithEvalOptions(ctx,
		lang.WithGlobals(globals),
		lang.WithMaxDepth(cli.MaxDepth),
		lang.WithLogger(log.Default()),
	)

	return ktx.Run(ctx, &cli)
}
