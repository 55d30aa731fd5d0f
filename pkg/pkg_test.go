package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "tabry"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+`)
	if !semver.MatchString(Version()) {
		t.Errorf("Expected semantic version, got %q", Version())
	}

	if strings.ContainsAny(Version(), "\r\n\t ") {
		t.Errorf("Version should be trimmed, got %q", Version())
	}
}

func TestError_IsSentinel(t *testing.T) {
	errBase := NewError("config error")
	errKind := errBase.Kind("missing include")
	errOther := NewError("other")

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"sentinel matches itself", errKind, errKind, true},
		{"kind matches parent", errKind, errBase, true},
		{"parent does not match kind", errBase, errKind, false},
		{"derived with attrs", errKind.With(slog.String("name", "x")), errKind, true},
		{"derived with attrs matches parent", errKind.With(slog.String("name", "x")), errBase, true},
		{"wrapped derived", fmt.Errorf("outer: %w", errKind.Wrap(errors.New("io"))), errBase, true},
		{"unrelated", errKind, errOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	errBase := NewError("parse error")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"message only", errBase, "parse error"},
		{"with cause", errBase.Wrap(errors.New("boom")), "parse error: boom"},
		{
			"with attrs",
			errBase.With(slog.Int("line", 3), slog.String("expected", "}")),
			"parse error (line=3, expected=})",
		},
		{"cause only", WrapError(errors.New("plain")), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Attr(t *testing.T) {
	err := NewError("x").With(slog.String("suggest", "common"))

	v, ok := err.Attr("suggest")
	if !ok || v.String() != "common" {
		t.Errorf("Attr(suggest) = %v, %v", v, ok)
	}

	if _, ok := err.Attr("missing"); ok {
		t.Error("Attr(missing) should not be found")
	}
}

func TestError_LogValue(t *testing.T) {
	err := NewError("missing include").
		With(slog.String("name", "foo")).
		Wrap(errors.New("cause"))

	v := err.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", v.Kind())
	}

	keys := map[string]bool{}
	for _, a := range v.Group() {
		keys[a.Key] = true
	}

	for _, k := range []string{"error", "cause", "name"} {
		if !keys[k] {
			t.Errorf("expected key %q in LogValue group", k)
		}
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		exe  string
		want string
	}{
		{"/usr/local/bin/tabry", "tabry"},
		{"/tmp/go-build/tabry.exe", "tabry"},
		{"/home/u/.tabry", "tabry"},
		{"/work/__debug_bin3462", Name},
		{"/work/__debug_bin", Name},
		{"complete-me", "complete-me"},
		{"...", Name},
	}

	for _, tt := range tests {
		if got := prefixOf(tt.exe); got != tt.want {
			t.Errorf("prefixOf(%q) = %q, want %q", tt.exe, got, tt.want)
		}
	}
}

func TestUserDir(t *testing.T) {
	base := t.TempDir()

	got := userDir(func() (string, error) { return base, nil }, ".cache")
	if want := filepath.Join(base, Prefix()); got != want {
		t.Errorf("userDir = %q, want %q", got, want)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	got = userDir(func() (string, error) { return "", os.ErrNotExist }, ".cache")
	if want := filepath.Join(home, ".cache", Prefix()); got != want {
		t.Errorf("userDir fallback = %q, want %q", got, want)
	}
}
