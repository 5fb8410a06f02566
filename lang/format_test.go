package lang

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sample() []Node {
	return []Node{
		b.Define("greet", []string{"who"}, b.Text("hi "), b.V("$who")),
		b.Element("p", []string{"class=x y"}, b.Do("greet", "world")),
		b.Let([]string{"n=1"}, b.If("$n", b.V("yes")), b.Else()),
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(t.Context(), &buf, sample()...); err != nil {
		t.Fatalf("print error: %v", err)
	}

	want := strings.Join([]string{
		"Define: String(greet) String(who)",
		"  Value: String(\"hi \")",
		"  Value: Var($who)",
		"Element: <p> class=\"x y\"",
		"  Call: String(greet) String(world)",
		"Let: Binding(n=Number(1))",
		"  If: Var($n)",
		"    Value: String(yes)",
		"  Else",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("print mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(t.Context(), &buf, 0, sample()...); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(got))
	}

	if got[0]["kind"] != "Define" || got[1]["tag"] != "p" {
		t.Errorf("unexpected nodes: %v", got)
	}

	args, _ := got[2]["args"].([]any)
	if len(args) != 1 {
		t.Fatalf("expected one binding, got %v", got[2]["args"])
	}

	if binding, _ := args[0].(map[string]any); binding["name"] != "n" || binding["value"] != 1.0 {
		t.Errorf("unexpected binding %v", args[0])
	}
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatYAML(t.Context(), &buf, 2, sample()...); err != nil {
		t.Fatalf("format error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"kind: Define", "tag: p", "var: who"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in YAML output:\n%s", want, out)
		}
	}
}
