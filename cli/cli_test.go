package cli

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		level  logLevel
		format logFormat
		pretty bool
		caller bool
	}{
		{
			name:   "separate_values",
			args:   []string{"--log-level", "debug", "--log-format", "json"},
			level:  "debug",
			format: "json",
			pretty: true,
		},
		{
			name:   "assigned_values",
			args:   []string{"page.html", "--log-level=warn", "--no-log-pretty", "--log-caller"},
			level:  "warn",
			pretty: false,
			caller: true,
		},
		{
			name:   "negated_assignment",
			args:   []string{"--no-log-pretty=false", "--no-log-caller=true"},
			pretty: true,
		},
		{
			name:   "value_not_consumed",
			args:   []string{"--log-level", "--log-caller"},
			pretty: true,
			caller: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f.Level != tt.level {
				t.Errorf("expected level %q, got %q", tt.level, f.Level)
			}

			if f.Format != tt.format {
				t.Errorf("expected format %q, got %q", tt.format, f.Format)
			}

			if f.Pretty != tt.pretty {
				t.Errorf("expected pretty %v, got %v", tt.pretty, f.Pretty)
			}

			if f.Caller != tt.caller {
				t.Errorf("expected caller %v, got %v", tt.caller, f.Caller)
			}
		})
	}
}

func TestSearchPath(t *testing.T) {
	flagDir := t.TempDir()
	envDir := t.TempDir()
	missing := filepath.Join(t.TempDir(), "missing")

	t.Setenv(PathEnv, envDir)

	got := searchPath(flagDir, missing)
	want := []string{flagDir, envDir}

	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSearchPath_Empty(t *testing.T) {
	t.Setenv(PathEnv, "")

	if got := searchPath(); len(got) != 0 {
		t.Errorf("expected empty search path, got %v", got)
	}
}
