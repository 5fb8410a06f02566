package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ardnew/tagl/lang"
)

func TestEvalRun(t *testing.T) {
	dir := t.TempDir()
	lib := writeSource(t, dir, "lib.html",
		`<DEFN li x><li><V $x></V></li></DEFN>`)
	page := writeSource(t, dir, "page.html",
		`<ul><FOR n in $items><DO li $n></DO></FOR></ul>`)
	under := writeSource(t, dir, "under.html", `<b>x</b><DO pop></DO>`)

	tests := []struct {
		name    string
		sources []string
		want    string
		wantErr error
	}{
		{
			name:    "library_then_page",
			sources: []string{lib, page},
			want:    "<ul><li>a</li><li>b</li></ul>\n",
		},
		{
			name:    "search_path",
			sources: []string{"lib.html", "page.html"},
			want:    "<ul><li>a</li><li>b</li></ul>\n",
		},
		{
			name:    "underflow",
			sources: []string{under},
			wantErr: lang.ErrStackUnderflow,
		},
		{
			name:    "missing",
			sources: []string{"missing.html"},
			wantErr: ErrOpenSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			ctx := WithOutput(t.Context(), &out)
			ctx = WithSearchPath(ctx, []string{dir})
			ctx = WithEvalOptions(ctx, lang.WithGlobals(map[string]any{
				"items": []string{"a", "b"},
			}))

			err := (&Eval{Source: tt.sources}).Run(ctx)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}

				if out.Len() != 0 {
					t.Errorf("expected no output, got %q", out.String())
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if out.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out.String())
			}
		})
	}
}
