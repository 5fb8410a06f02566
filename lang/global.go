package lang

import (
	"log/slog"
	"os"
	"strings"

	"github.com/expr-lang/expr"
)

// ParseGlobals compiles each "name=expression" definition in order and
// returns the resulting variables. Expressions are expr-lang source and
// may refer to earlier definitions and to env(key), which reads the
// process environment.
//
//	ParseGlobals([]string{"n=3", "items=1..n", `home=env("HOME")`})
func ParseGlobals(defs []string) (map[string]any, error) {
	vars := make(map[string]any, len(defs))
	raw := make(map[string]any, len(defs))

	for _, def := range defs {
		name, source, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, ErrInvalidGlobal.With(slog.String("definition", def))
		}

		value, err := evalExpr(source, raw)
		if err != nil {
			return nil, ErrInvalidGlobal.Wrap(err).With(slog.String("name", name))
		}

		raw[name] = value
		vars[name] = normalize(value)
	}

	return vars, nil
}

func evalExpr(source string, vars map[string]any) (any, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", nil
	}

	env := make(map[string]any, len(vars)+1)
	for k, v := range vars {
		env[k] = v
	}

	env["env"] = os.Getenv

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, err
	}

	return expr.Run(program, env)
}
