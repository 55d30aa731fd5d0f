package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" info ", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q): expected %v, got %v", tt.input, tt.want, got)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	want := []string{"trace", "debug", "info", "warn", "error"}
	if got := slices.Collect(Levels()); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"xml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q): expected %v, got %v", tt.input, tt.want, got)
			}
		})
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	// must not panic
	l.Trace("trace")
	l.Error("error", slog.String("k", "v"))
	l.With(slog.Int("n", 1)).Info("info")

	if got := l.Level(); got != DefaultLevel {
		t.Errorf("expected %v, got %v", DefaultLevel, got)
	}

	if got := l.Wrap(WithLevel(LevelTrace)); got.Logger != nil {
		t.Error("expected wrapped zero logger to remain a no-op")
	}
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelWarn),
		WithPretty(false),
		WithTimeLayout("none"))

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info message to be filtered, got %q", out)
	}

	if !strings.Contains(out, "msg=shown") {
		t.Errorf("expected warn message, got %q", out)
	}

	if strings.Contains(out, "time=") {
		t.Errorf("expected no timestamp, got %q", out)
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelTrace),
		WithPretty(false),
		WithTimeLayout("none"))

	l.TraceContext(context.Background(), "step", slog.String("token", "--verbose"))

	want := "level=TRACE msg=step token=--verbose\n"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(false),
		WithTimeLayout("none"))

	l.With(slog.String("cmd", "vehicles")).Info("loaded", slog.Int("subs", 6))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec["msg"] != "loaded" || rec["cmd"] != "vehicles" || rec["subs"] != float64(6) {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestLogger_Pretty(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   []string
	}{
		{
			name:   "text",
			format: FormatText,
			want:   []string{"level=DEBUG", "msg=compiled", "scope.file=a.tabry", "ok=true"},
		},
		{
			name:   "json",
			format: FormatJSON,
			want:   []string{`"level": "DEBUG"`, `"msg": "compiled"`, `"scope.file": "a.tabry"`, `"ok": true`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			// bytes.Buffer is not a terminal, so the renderer emits no color.
			l := Make(&buf,
				WithLevel(LevelDebug),
				WithFormat(tt.format),
				WithTimeLayout("none"))

			l.With(slog.Group("scope", slog.String("file", "a.tabry"))).
				Debug("compiled", slog.Bool("ok", true))

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output, got %q", w, out)
				}
			}
		})
	}
}

func TestConfig(t *testing.T) {
	saved := Default()
	defer defaultLog.Store(&saved)

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithPretty(false), WithTimeLayout("none"))
	Debug("hidden")
	Config(WithLevel(LevelDebug))
	Debug("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(false),
		WithCaller(true),
		WithTimeLayout("none"))

	l.Warn("where")

	var rec struct {
		Source struct {
			File string `json:"file"`
		} `json:"source"`
	}

	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(rec.Source.File, "log_test.go") {
		t.Errorf("source file = %q, want log_test.go", rec.Source.File)
	}
}
