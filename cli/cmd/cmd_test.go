package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/tagl/lang"
)

// writeSource creates a file named name in dir containing src.
func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestResolveSource(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeSource(t, second, "page.html", "second")
	want := writeSource(t, first, "lib.html", "first")
	writeSource(t, second, "lib.html", "shadowed")

	tests := []struct {
		name    string
		source  string
		want    string
		wantErr bool
	}{
		{name: "first_match", source: "lib.html", want: want},
		{name: "later_dir", source: "page.html", want: filepath.Join(second, "page.html")},
		{name: "absolute", source: want, want: want},
		{name: "missing", source: "nope.html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSource(tt.source, []string{first, second})

			if tt.wantErr {
				if !errors.Is(err, os.ErrNotExist) {
					t.Errorf("expected not-exist error, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseSources_Duplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.html", `<V 1></V>`)

	link := filepath.Join(dir, "link.html")
	if err := os.Symlink(path, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	ctx := WithSearchPath(t.Context(), []string{dir})

	nodes, err := parseSources(ctx, []string{path, "a.html", link})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(nodes) != 1 {
		t.Errorf("expected 1 node, got %d", len(nodes))
	}
}

func TestParseSources_Order(t *testing.T) {
	dir := t.TempDir()
	lib := writeSource(t, dir, "lib.html", `<DEFN two><V 2></V></DEFN>`)
	page := writeSource(t, dir, "page.html", `<DO two></DO>`)

	nodes, err := parseSources(t.Context(), []string{lib, page})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	if nodes[0].Kind() != lang.KindDefine || nodes[1].Kind() != lang.KindCall {
		t.Errorf("expected Define then Call, got %s then %s", nodes[0].Kind(), nodes[1].Kind())
	}
}

func TestParseSources_Malformed(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.html", `<FOR x></FOR>`)

	_, err := parseSources(t.Context(), []string{path})
	if !errors.Is(err, lang.ErrMalformedTag) {
		t.Errorf("expected ErrMalformedTag, got %v", err)
	}
}

func TestWithEvalOptions_Accumulate(t *testing.T) {
	ctx := WithEvalOptions(context.Background(), lang.WithMaxDepth(1))
	a := WithEvalOptions(ctx, lang.WithMaxDepth(2))
	b := WithEvalOptions(ctx, lang.WithMaxDepth(3), lang.WithMaxDepth(4))

	if n := len(evalOptionsFrom(a)); n != 2 {
		t.Errorf("expected 2 options, got %d", n)
	}

	if n := len(evalOptionsFrom(b)); n != 3 {
		t.Errorf("expected 3 options, got %d", n)
	}

	if n := len(evalOptionsFrom(ctx)); n != 1 {
		t.Errorf("expected parent to keep 1 option, got %d", n)
	}
}

func TestOutputFrom_Default(t *testing.T) {
	if w := outputFrom(context.Background()); w != os.Stdout {
		t.Errorf("expected os.Stdout, got %T", w)
	}
}
