package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/tagl/lang"
)

const fmtSource = `<DEFN greet who><V $who></V></DEFN><DO greet world></DO>`

func TestTreeRun(t *testing.T) {
	path := writeSource(t, t.TempDir(), "page.html", fmtSource)

	var out bytes.Buffer

	err := (&Tree{Source: []string{path}}).Run(WithOutput(t.Context(), &out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Define: String(greet) String(who)\n" +
		"  Value: Var($who)\n" +
		"Call: String(greet) String(world)\n"

	if out.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestJSONRun(t *testing.T) {
	path := writeSource(t, t.TempDir(), "page.html", fmtSource)

	for _, indent := range []int{0, 2} {
		var out bytes.Buffer

		err := (&JSON{Indent: indent, Source: []string{path}}).Run(WithOutput(t.Context(), &out))
		if err != nil {
			t.Fatalf("indent %d: unexpected error: %v", indent, err)
		}

		var nodes []map[string]any
		if err := json.Unmarshal(out.Bytes(), &nodes); err != nil {
			t.Fatalf("indent %d: invalid JSON: %v", indent, err)
		}

		if len(nodes) != 2 || nodes[0]["kind"] != "Define" || nodes[1]["kind"] != "Call" {
			t.Errorf("indent %d: unexpected nodes %v", indent, nodes)
		}
	}
}

func TestYAMLRun(t *testing.T) {
	path := writeSource(t, t.TempDir(), "page.html", fmtSource)

	var out bytes.Buffer

	err := (&YAML{Indent: 2, Source: []string{path}}).Run(WithOutput(t.Context(), &out))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"kind: Define", "kind: Call", "var: who"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in:\n%s", want, out.String())
		}
	}
}

func TestFmt_InvalidSource(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.html", `<DO></DO>`)
	source := []string{path}

	tests := []struct {
		name string
		run  func(context.Context) error
	}{
		{"tree", (&Tree{Source: source}).Run},
		{"json", (&JSON{Source: source}).Run},
		{"yaml", (&YAML{Source: source}).Run},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			err := tt.run(WithOutput(t.Context(), &out))
			if !errors.Is(err, lang.ErrMalformedTag) {
				t.Errorf("expected ErrMalformedTag, got %v", err)
			}

			if out.Len() != 0 {
				t.Errorf("expected no output, got %q", out.String())
			}
		})
	}
}
