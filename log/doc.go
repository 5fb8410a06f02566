// Package log provides the leveled structured logger used throughout tagl,
// built on [log/slog].
//
// A [Logger] is configured once with functional options and then passed by
// value. The zero Logger discards everything.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("rendered", slog.Int("nodes", 12))
//
// Attributes are always [slog.Attr] values, never alternating key/value
// arguments.
//
// # Levels
//
// Besides the four [slog] levels, [LevelTrace] sits below [LevelDebug] and
// reports evaluation steps such as function definitions and calls.
//
// # Package logger
//
// The package-level functions ([Info], [Warn], ...) write through a default
// logger on standard error. [Config] reconfigures it; the command line does
// so from its --log-* flags before any command runs.
package log
