// Package cli contains the command line interface for tagl.
//
// # Usage
//
//	tagl [flags] [source ...]          render templates to HTML (default)
//	tagl fmt {tree|json|yaml} [source] print the syntax tree
//	tagl repl                          evaluate templates interactively
//	tagl init [--force]                write the configuration file
//
// A relative source missing from the working directory is looked up in each
// --path directory, then in each directory of $TAGL_PATH. A source of "-"
// reads standard input. Sources are evaluated in order against one root
// environment, so functions defined in one file are visible in the next.
//
// Globals are defined with --define NAME=EXPR. Each expression is evaluated
// once with [github.com/expr-lang/expr] and may refer to earlier globals and
// to env("VAR") for environment variables:
//
//	tagl -D title='"Report"' -D n=3 -D sq='map(1..n, # * #)' page.html
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (e.g. $XDG_CONFIG_HOME/tagl/config.yaml). Keys are flag names;
// nested mappings join with hyphens:
//
//	log:
//	  level: debug
//	  format: json
//	path:
//	  - ~/templates
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout, a time constant name, or "none"
//   - --log-caller: include caller information
//   - --log-pretty: colorized output
//
// Template comments (<nb>) are logged at info level, and unresolved function
// calls at warn level.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tagl .
//
//   - --pprof-mode: profiling mode (see [github.com/ardnew/tagl/profile])
//   - --pprof-dir: output directory (default: ~/.cache/tagl/pprof)
package cli
