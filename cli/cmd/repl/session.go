package repl

import (
	"bytes"
	"context"
	"slices"
	"strings"

	"github.com/ardnew/tagl/lang"
	"github.com/ardnew/tagl/log"
	"github.com/ardnew/tagl/markup"
)

// session is a persistent root environment. Functions and root bindings
// defined by one fragment remain visible to later fragments until reset.
type session struct {
	env   *lang.Env
	sink  *markup.Sink
	logs  *bytes.Buffer
	opts  []lang.Option
	level log.Level
}

func newSession(level log.Level, opts ...lang.Option) *session {
	s := &session{
		sink:  markup.NewSink(),
		logs:  new(bytes.Buffer),
		opts:  opts,
		level: level,
	}
	s.reset()

	return s
}

// reset discards every definition, binding and stack value.
func (s *session) reset() {
	logger := log.Make(s.logs,
		log.WithLevel(s.level),
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)

	opts := append(slices.Clone(s.opts),
		lang.WithSink(s.sink),
		lang.WithLogger(logger),
	)

	s.env = lang.NewEnv(opts...)
	s.logs.Reset()
}

// eval renders one markup fragment. It returns the HTML output and the
// diagnostics logged while evaluating it.
func (s *session) eval(ctx context.Context, src string) (out, diag string, err error) {
	defer s.logs.Reset()

	nodes, err := markup.ParseString(src)
	if err != nil {
		return "", "", err
	}

	root := s.sink.Fragment()
	err = s.env.Render(ctx, root, nodes...)

	var buf bytes.Buffer
	if werr := markup.Write(&buf, root); werr != nil && err == nil {
		err = werr
	}

	return buf.String(), strings.TrimRight(s.logs.String(), "\n"), err
}

// funcs returns the names of all resolvable functions.
func (s *session) funcs() []string { return s.env.FuncNames() }

// signature describes the parameters of the named function, or returns
// false if it is not defined.
func (s *session) signature(name string) ([]string, bool) {
	fn, ok := s.env.ResolveFunc(name)
	if !ok {
		return nil, false
	}

	switch f := fn.(type) {
	case *lang.UserFunc:
		return f.Params, true

	case *lang.NativeFunc:
		params := make([]string, f.Arity)
		for i := range params {
			params[i] = string(rune('a' + i))
		}

		return params, true
	}

	return nil, true
}

// stack renders the root operand stack, bottom first.
func (s *session) stack() []string {
	values := s.env.Stack().Values()
	out := make([]string, len(values))

	for i, v := range values {
		out[i] = lang.ToString(v)
	}

	return out
}
