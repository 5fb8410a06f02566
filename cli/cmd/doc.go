// Package cmd implements the tagl subcommands: eval, fmt, init and repl.
//
// Commands receive their shared state through the context: the parsed
// [kong.Context] ([WithContext]), the template search path
// ([WithSearchPath]), options for each root environment ([WithEvalOptions])
// and the output writer ([WithOutput]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
