package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}

	return val
}

func TestResolveYAML_Values(t *testing.T) {
	config := `
log-level: debug
log_format: text
indent: 4
ratio: 0.5
debug: true
import-path:
  - /a
  - /b
`

	resolver, err := resolveYAML(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolveYAML failed: %v", err)
	}

	tests := []struct {
		name string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"log_format", "text"},
		{"indent", "4"},
		{"ratio", "0.5"},
		{"debug", true},
		{"import-path", []any{"/a", "/b"}},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveFlag(t, resolver, tt.name)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestResolveYAML_Invalid(t *testing.T) {
	resolver, err := resolveYAML(strings.NewReader("log-level: [unclosed"))
	if err != nil {
		t.Fatalf("resolveYAML failed: %v", err)
	}

	if val := resolveFlag(t, resolver, "log-level"); val != nil {
		t.Errorf("expected nil value for invalid config, got %v", val)
	}
}

func TestResolveYAML_Empty(t *testing.T) {
	resolver, err := resolveYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolveYAML failed: %v", err)
	}

	if val := resolveFlag(t, resolver, "log-level"); val != nil {
		t.Errorf("expected nil value for empty config, got %v", val)
	}
}

func TestDebugEnv(t *testing.T) {
	for v, want := range map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"FALSE": false,
		"1":     true,
		"yes":   true,
		"true":  true,
	} {
		if got := debugEnv(v); got != want {
			t.Errorf("debugEnv(%q) = %v, want %v", v, got, want)
		}
	}
}
