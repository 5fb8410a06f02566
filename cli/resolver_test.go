package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve_Flatten(t *testing.T) {
	src := `
log:
  level: debug
  pretty: false
max_depth: 200
path:
  - /tmp/a
  - /tmp/b
`

	res, err := resolve(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	cfg, ok := res.(config)
	if !ok {
		t.Fatalf("expected config resolver, got %T", res)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"max-depth", "200"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	paths, ok := cfg["path"].([]any)
	if !ok || !slices.Equal(paths, []any{"/tmp/a", "/tmp/b"}) {
		t.Errorf("expected [/tmp/a /tmp/b], got %v", cfg["path"])
	}
}

func TestResolve_Underscore(t *testing.T) {
	cfg := config{"max_depth": "5"}

	got, err := cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "max-depth"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got != "5" {
		t.Errorf("expected 5, got %v", got)
	}
}

func TestResolve_Invalid(t *testing.T) {
	for name, src := range map[string]string{
		"empty":   "",
		"invalid": "log: [unterminated",
	} {
		t.Run(name, func(t *testing.T) {
			res, err := resolve(strings.NewReader(src))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			got, _ := res.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-level"}})
			if got != nil {
				t.Errorf("expected nil, got %v", got)
			}
		})
	}
}
