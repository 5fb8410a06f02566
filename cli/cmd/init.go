package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tagl/log"
	"github.com/ardnew/tagl/profile"
)

// defaultConfigIndent is the indent width of the generated configuration.
const defaultConfigIndent = 2

// Init generates a configuration file from the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	fail := ErrWriteConfig.With(slog.String("file", confPath))

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return fail.With(slog.Bool("exists", true)).Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, configDocument(ktx),
		yaml.Indent(defaultConfigIndent))
	if err != nil {
		return fail.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
		return fail.Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return fail.Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// configDocument lists every visible flag with a value, in declaration
// order. Help, version and profiling flags are omitted.
func configDocument(ktx *kong.Context) yaml.MapSlice {
	var doc yaml.MapSlice

	for _, flag := range ktx.Flags() {
		if flag.Hidden || flag.Name == "help" || flag.Name == "version" ||
			strings.HasPrefix(flag.Name, profile.Tag+"-") {
			continue
		}

		if value := configValue(ktx.FlagValue(flag)); value != nil {
			doc = append(doc, yaml.MapItem{Key: flag.Name, Value: value})
		}
	}

	return doc
}

// configValue converts a flag value to its YAML form, or nil if the flag is
// unset or empty.
func configValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil

	case bool, int, int64, uint, uint64, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case fmt.Stringer:
		return configValue(v.String())

	default:
		return configValue(fmt.Sprint(v))
	}
}
