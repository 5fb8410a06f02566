package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tagl/lang"
	"github.com/ardnew/tagl/log"
	"github.com/ardnew/tagl/markup"
)

type (
	contextKey     struct{}
	searchPathKey  struct{}
	evalOptionsKey struct{}
	outputKey      struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithSearchPath returns a new context.Context carrying the directories
// searched for relative source paths, in priority order.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// WithEvalOptions returns a new context.Context carrying options applied to
// every root environment a command creates. Options accumulate.
func WithEvalOptions(ctx context.Context, opts ...lang.Option) context.Context {
	prev := evalOptionsFrom(ctx)

	return context.WithValue(ctx, evalOptionsKey{}, append(prev[:len(prev):len(prev)], opts...))
}

func evalOptionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(evalOptionsKey{}).([]lang.Option)

	return opts
}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of [os.Stdout].
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// fileKey uniquely identifies a file by its device and inode numbers, so the
// same file named through a symlink or a different relative path is read
// once.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// resolveSource returns the file named by name. Absolute names and names
// that exist relative to the working directory are used as is; other
// relative names are looked up in each search path directory in order.
func resolveSource(name string, dirs []string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", ErrOpenSource.
		With(slog.String("file", name)).
		Wrap(os.ErrNotExist)
}

// parseSources parses each named source into one node sequence, in order.
// Duplicate files and repeated "-" are read once, and stdin is read last.
// No names means stdin.
func parseSources(ctx context.Context, names []string) ([]lang.Node, error) {
	if len(names) == 0 {
		names = []string{stdinSource}
	}

	var (
		nodes []lang.Node
		stdin bool
	)

	dirs := searchPathFrom(ctx)
	seen := make(map[fileKey]struct{})

	for _, name := range names {
		if name == stdinSource {
			stdin = true

			continue
		}

		parsed, err := parseFile(ctx, name, dirs, seen)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, parsed...)
	}

	if stdin {
		parsed, err := markup.Parse(os.Stdin)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, parsed...)
	}

	return nodes, nil
}

func parseFile(
	ctx context.Context,
	name string,
	dirs []string,
	seen map[fileKey]struct{},
) ([]lang.Node, error) {
	path, err := resolveSource(name, dirs)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenSource.With(slog.String("file", path)).Wrap(err)
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil {
		if key, ok := makeFileKey(info); ok {
			if _, dup := seen[key]; dup {
				log.DebugContext(ctx, "skipping duplicate source",
					slog.String("file", path))

				return nil, nil
			}

			seen[key] = struct{}{}
		}
	}

	nodes, err := markup.Parse(file)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("file", path))
	}

	log.TraceContext(ctx, "parsed source",
		slog.String("file", path),
		slog.Int("nodes", len(nodes)),
	)

	return nodes, nil
}
