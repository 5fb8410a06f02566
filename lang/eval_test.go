package lang

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

var b = NewBuilder()

func TestEval_Sub_PopsRightOperandFirst(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Do("push", "10"),
		b.Do("push", "3"),
		b.Do("sub"),
	)

	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}

	if got := h.stack(); !slices.Equal(got, []any{7.0}) {
		t.Errorf("expected stack [7], got %v", got)
	}
}

func TestEval_Natives(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		op   string
		want any
	}{
		{"add", "3", "4", "add", 7.0},
		{"add concatenates text", "a", "1", "add", "a1"},
		{"mul", "6", "7", "mul", 42.0},
		{"div", "1", "4", "div", 0.25},
		{"rem", "-7", "3", "rem", -1.0},
		{"eq", "2", "2", "eq", true},
		{"eq strict", "1", "true", "eq", false},
		{"ne", "2", "3", "ne", true},
		{"lt", "2", "10", "lt", true},
		{"le", "2", "2", "le", true},
		{"gt", "b", "a", "gt", true},
		{"ge", "1", "2", "ge", false},
		{"and", "1", "0", "and", false},
		{"or", "0", "x", "or", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.render(t, b.Do("push", tt.a), b.Do("push", tt.b), b.Do(tt.op))

			if got := h.stack(); len(got) != 1 || got[0] != tt.want {
				t.Errorf("expected stack [%v], got %v", tt.want, got)
			}
		})
	}
}

func TestEval_Range(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []any
	}{
		{"integers", []string{"1", "4"}, []any{1.0, 2.0, 3.0}},
		{"fractional end", []string{"0", "2.5"}, []any{0.0, 1.0, 2.0}},
		{"fractional start", []string{"0.5", "3"}, []any{0.5, 1.5, 2.5}},
		{"empty when reversed", []string{"3", "1"}, []any{}},
		{"empty when equal", []string{"2", "2"}, []any{}},
		{"empty on NaN bound", []string{"0", "x"}, []any{}},
		{"empty on missing bound", []string{"5"}, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.render(t, b.Do("range", tt.args...))

			got := h.stack()
			if len(got) != 1 {
				t.Fatalf("expected one operand, got %v", got)
			}

			seq, ok := got[0].([]any)
			if !ok || !slices.Equal(seq, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got[0])
			}
		})
	}
}

func TestEval_Range_Limit(t *testing.T) {
	h := newHarness(t)

	_, err := h.tryRender(t.Context(), b.Do("range", "0", "2000000"))
	if !errors.Is(err, ErrRangeLimit) {
		t.Errorf("expected ErrRangeLimit, got %v", err)
	}

	if n := h.env.Stack().Len(); n != 0 {
		t.Errorf("expected nothing pushed, got %v", h.stack())
	}
}

func TestEval_Pop_RendersTop(t *testing.T) {
	h := newHarness(t)

	out := h.render(t, b.Do("push", "5"), b.Do("pop"))
	if out != "5" {
		t.Errorf("expected output 5, got %q", out)
	}

	if n := h.env.Stack().Len(); n != 0 {
		t.Errorf("expected empty stack, got %d operands", n)
	}
}

func TestEval_Pop_ExpandsArray(t *testing.T) {
	h := newHarness(t)

	out := h.render(t, b.Element("p", nil, b.Do("range", "0", "3"), b.Do("pop")))
	if out != "<p>012</p>" {
		t.Errorf("expected one text leaf per element, got %q", out)
	}
}

func TestEval_StackUnderflow(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
	}{
		{"pop", []Node{b.Do("pop")}},
		{"binary", []Node{b.Do("push", "1"), b.Do("sub")}},
		{"set", []Node{b.Do("set", "x")}},
		{"nested in element", []Node{b.Element("p", nil, b.Do("add"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			_, err := h.tryRender(t.Context(), tt.nodes...)
			if !errors.Is(err, ErrStackUnderflow) {
				t.Errorf("expected ErrStackUnderflow, got %v", err)
			}
		})
	}
}

func TestEval_StackUnderflow_AbortsRemainingNodes(t *testing.T) {
	h := newHarness(t)

	out, err := h.tryRender(t.Context(),
		b.Text("before"),
		b.Do("pop"),
		b.Text("after"),
	)

	if !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("expected ErrStackUnderflow, got %v", err)
	}

	if out != "before" {
		t.Errorf("expected only preceding output, got %q", out)
	}
}

func TestEval_RangeThenFor_VisitsEachItemOnce(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Do("range", "0", "5"),
		b.Do("set", "xs"),
		b.For("i", "$xs",
			b.V("$i"),
			b.Do("push", "$i"),
			b.Do("set", "last"),
		),
	)

	if out != "01234" {
		t.Errorf("expected items 0..4 in order, got %q", out)
	}

	if n := h.env.Stack().Len(); n != 0 {
		t.Errorf("expected balanced stack, got %v", h.stack())
	}

	if _, ok := h.env.Lookup("last"); ok {
		t.Error("expected loop scope binding to vanish after FOR")
	}
}

func TestEval_For_SharesOneScope(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Do("range", "0", "3"),
		b.Do("set", "xs"),
		b.For("i", "$xs",
			b.V("$seen"),
			b.Do("push", "$i"),
			b.Do("set", "seen"),
		),
	)

	if out != "null01" {
		t.Errorf("expected bindings to persist across iterations, got %q", out)
	}
}

func TestEval_For_String(t *testing.T) {
	h := newHarness(t)

	out := h.render(t, b.For("c", "héy", b.V("$c"), b.Text("-")))
	if out != "h-é-y-" {
		t.Errorf("expected one iteration per character, got %q", out)
	}
}

func TestEval_For_NotIterable(t *testing.T) {
	h := newHarness(t)

	out := h.render(t, b.For("i", "5", b.V("$i")), b.Text("next"))
	if out != "next" {
		t.Errorf("expected no iterations, got %q", out)
	}

	if !strings.Contains(h.logs.String(), `"msg":"value is not iterable"`) {
		t.Errorf("expected warning, got %q", h.logs.String())
	}
}

func TestEval_CondChain(t *testing.T) {
	h := newHarness(t)

	out := h.render(t, b.Cond(
		b.NB(b.V("x")),
		b.If("false", b.Text("never")),
		b.If("true", b.Text("A")),
		b.Else(b.Text("B")),
	))

	if out != "A" {
		t.Errorf("expected A, got %q", out)
	}

	logs := h.logs.String()
	if !strings.Contains(logs, `"msg":"comment","values":["x"]`) {
		t.Errorf("expected comment diagnostic, got %q", logs)
	}
}

func TestEval_CondChain_SideEffectsBeforeMatch(t *testing.T) {
	h := newHarness(t)

	out := h.render(t, b.Cond(
		b.Do("push", "1"),
		b.Text("discarded"),
		b.If("$missing", b.Text("no")),
		b.Else(b.Text("fallback")),
		b.Do("push", "2"),
	))

	if out != "fallback" {
		t.Errorf("expected fallback, got %q", out)
	}

	if got := h.stack(); !slices.Equal(got, []any{1.0}) {
		t.Errorf("expected side effect before match only, got %v", got)
	}
}

func TestEval_CondChain_NoMatch(t *testing.T) {
	h := newHarness(t)

	if out := h.render(t, b.Cond(b.If("0", b.Text("zero")))); out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestEval_If_Truthiness(t *testing.T) {
	tests := []struct {
		cond string
		want string
	}{
		{"1", "yes"},
		{"0", ""},
		{"true", "yes"},
		{"false", ""},
		{"text", "yes"},
		{"$unset", ""},
	}

	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			h := newHarness(t)

			if out := h.render(t, b.If(tt.cond, b.Text("yes"))); out != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out)
			}
		})
	}
}

func TestEval_UnresolvedFunction(t *testing.T) {
	h := newHarness(t)

	out := h.render(t, b.Do("nope", "1"), b.Text("after"))
	if out != "after" {
		t.Errorf("expected sibling output, got %q", out)
	}

	logs := h.logs.String()
	if !strings.Contains(logs, `"level":"WARN","msg":"function not found","name":"nope"`) {
		t.Errorf("expected warning diagnostic, got %q", logs)
	}
}

func TestEval_Let_Scoping(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Let([]string{"n=1", "flag", "m=$n"},
			b.V("$n"),
			b.Let([]string{"n=2"}, b.V("$n"), b.V("$m")),
			b.V("$n"),
		),
		b.Text("|"),
		b.V("$n"),
	)

	if out != "1211|null" {
		t.Errorf("expected scoped bindings, got %q", out)
	}
}

func TestEval_UserFunction_BoundaryIsolation(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Define("peek", nil, b.V("$secret")),
		b.Define("show", []string{"x"}, b.V("$x")),
		b.Let([]string{"secret=42"},
			b.Do("peek"),
			b.Text(","),
			b.Do("show", "$secret"),
		),
	)

	if out != "null,42" {
		t.Errorf("expected caller variables hidden, got %q", out)
	}
}

func TestEval_UserFunction_CallsAncestorFunction(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Define("inner", nil, b.Text("in")),
		b.Define("outer", nil, b.Text("<"), b.Do("inner"), b.Text(">")),
		b.Do("outer"),
	)

	if out != "<in>" {
		t.Errorf("expected nested call output, got %q", out)
	}
}

func TestEval_UserFunction_ReturnsThroughStack(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Define("double", []string{"x"},
			b.Do("push", "$x"),
			b.Do("push", "2"),
			b.Do("mul"),
			b.Text("ok"),
		),
		b.Do("push", "sentinel"),
		b.Do("double", "21"),
		b.Do("pop"),
	)

	if out != "ok42" {
		t.Errorf("expected body output then returned value, got %q", out)
	}

	if got := h.stack(); !slices.Equal(got, []any{"sentinel"}) {
		t.Errorf("expected caller stack untouched below result, got %v", got)
	}
}

func TestEval_UserFunction_EmptyStackReturnsNull(t *testing.T) {
	h := newHarness(t)

	h.render(t, b.Define("noop", nil), b.Do("noop"))

	if got := h.stack(); len(got) != 1 || got[0] != nil {
		t.Errorf("expected [null], got %v", got)
	}
}

func TestEval_UserFunction_ArityMismatch(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Define("pair", []string{"a", "b"}, b.V("$a"), b.Text("/"), b.V("$b")),
		b.Do("pair", "1"),
		b.Text(" "),
		b.Do("pair", "1", "2", "3"),
	)

	if out != "1/null 1/2" {
		t.Errorf("expected unbound formals to be null, got %q", out)
	}
}

func TestEval_UserFunction_Recursion(t *testing.T) {
	h := newHarness(t)

	// countdown n: renders n, then recurses with n-1 while n > 0.
	out := h.render(t,
		b.Define("countdown", []string{"n"},
			b.V("$n"),
			b.Do("push", "$n"),
			b.Do("push", "0"),
			b.Do("gt"),
			b.Do("set", "more"),
			b.If("$more",
				b.Do("push", "$n"),
				b.Do("push", "1"),
				b.Do("sub"),
				b.Do("set", "next"),
				b.Do("countdown", "$next"),
				b.Do("pop"),
			),
		),
		b.Do("countdown", "3"),
	)

	if out != "3210" {
		t.Errorf("expected countdown output, got %q", out)
	}
}

func TestEval_MaxDepthExceeded(t *testing.T) {
	h := newHarness(t, WithMaxDepth(8))

	_, err := h.tryRender(t.Context(),
		b.Define("forever", nil, b.Do("forever")),
		b.Do("forever"),
	)

	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("expected ErrMaxDepthExceeded, got %v", err)
	}
}

func TestEval_Canceled(t *testing.T) {
	h := newHarness(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := h.tryRender(ctx,
		b.Define("f", nil, b.Text("x")),
		b.Do("f"),
	)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEval_Element(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Element("ul", []string{"class=list"},
			b.For("i", "ab",
				b.Element("li", nil, b.V("$i")),
			),
		),
	)

	want := `<ul class="list"><li>a</li><li>b</li></ul>`
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestEval_Comment_LogsValuesOnly(t *testing.T) {
	h := newHarness(t)

	out := h.render(t,
		b.Let([]string{"n=3"},
			b.NB(b.V("$n"), b.V("true"), b.Do("push", "9"), b.Element("p", nil)),
		),
	)

	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}

	if !strings.Contains(h.logs.String(), `"values":[3,true,null,null]`) {
		t.Errorf("expected comment values, got %q", h.logs.String())
	}

	if n := h.env.Stack().Len(); n != 0 {
		t.Errorf("expected comment children without side effects, got %v", h.stack())
	}
}

func TestEvalValue(t *testing.T) {
	h := newHarness(t)

	v, err := EvalValue(t.Context(), h.env, b.V("12"))
	if err != nil || v != 12.0 {
		t.Errorf("expected 12, got %v (%v)", v, err)
	}

	v, err = EvalValue(t.Context(), h.env, b.Do("push", "1"))
	if err != nil || v != nil {
		t.Errorf("expected nil for call, got %v (%v)", v, err)
	}

	if h.env.Stack().Len() != 0 {
		t.Error("expected EvalValue of a call to have no side effects")
	}
}

type bogus struct{}

func (bogus) Kind() Kind { return Kind(-1) }

func TestEval_UnknownNode(t *testing.T) {
	h := newHarness(t)

	if _, err := Eval(t.Context(), h.env, bogus{}); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}

	if _, err := EvalValue(t.Context(), h.env, bogus{}); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}

	if got := (bogus{}).Kind().String(); got != "Unknown" {
		t.Errorf("expected Unknown kind, got %q", got)
	}
}

func TestRender_FreshEnvironment(t *testing.T) {
	root := &testNode{}

	err := Render(t.Context(), testSink{}, root, []Node{
		b.Do("push", "1"),
		b.Do("push", "2"),
		b.Do("add"),
		b.Do("pop"),
	})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	if got := root.String(); got != "3" {
		t.Errorf("expected 3, got %q", got)
	}
}

func TestFlatten(t *testing.T) {
	root := &testNode{}
	sink := testSink{}

	Flatten(sink, root, List{
		nil,
		Scalar{Value: 1.0},
		List{Output{Node: sink.CreateText("a")}, nil, List{}},
		Scalar{Value: nil},
		Output{Node: sink.CreateElement("br")},
		Scalar{Value: []any{2.0, nil, []any{"b", "c"}}},
	})

	if got := root.String(); got != "1a<br></br>2bc" {
		t.Errorf("expected flattened output, got %q", got)
	}
}
