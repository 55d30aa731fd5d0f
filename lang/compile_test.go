package lang

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/tools/txtar"

	"github.com/ardnew/tabry/conf"
	"github.com/ardnew/tabry/log"
)

// TestCompile_Fixtures compiles the input.tabry file of every archive in
// testdata and compares the result against its want.json file.
func TestCompile_Fixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}

	if len(paths) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}

			files := make(map[string][]byte, len(ar.Files))
			for _, f := range ar.Files {
				files[f.Name] = f.Data
			}

			got, err := CompileReader(context.Background(),
				bytes.NewReader(files["input.tabry"]))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want, err := conf.Decode(files["want.json"])
			if err != nil {
				t.Fatalf("invalid want.json: %v", err)
			}

			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Compile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
		line   int64
	}{
		{
			name:   "multiple cmd",
			input:  "cmd a\ncmd b",
			reason: "multiple cmd statements",
			line:   2,
		},
		{
			name:   "inline and body desc on flag",
			input:  "flag f \"one\" {\n  desc \"two\"\n}",
			reason: "multiple desc statements",
			line:   2,
		},
		{
			name:   "two body descs on arg",
			input:  "arg {\n  desc \"one\"\n  desc \"two\"\n}",
			reason: "multiple desc statements",
			line:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileString(context.Background(), tt.input)
			if !errors.Is(err, ErrCompile) {
				t.Fatalf("expected ErrCompile, got %v", err)
			}

			if got := attr(t, err, "reason").String(); got != tt.reason {
				t.Errorf("expected %q, got %q", tt.reason, got)
			}

			if line := attr(t, err, "line").Int64(); line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, line)
			}
		})
	}
}

func TestCompile_SubDescriptionOverwritten(t *testing.T) {
	c, err := CompileString(context.Background(),
		`desc "root" sub s "inline" { desc "body" } desc "root again"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Main.Description != "root again" {
		t.Errorf("expected %q, got %q", "root again", c.Main.Description)
	}

	if got := c.Main.Subs[0].Concrete.Description; got != "body" {
		t.Errorf("expected %q, got %q", "body", got)
	}
}

func TestCompile_DuplicateDefinitions(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithPretty(false), log.WithTimeLayout("none"))

	c, err := CompileString(context.Background(), `
		defopts @x { opts const old }
		defopts @x { opts const new }
		defargs @y { flag old }
		defargs @y { flag new }
	`, WithLogger(logger))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.OptionIncludes["x"]; len(got) != 1 || got[0].Value != "new" {
		t.Errorf("expected later defopts to win, got %v", got)
	}

	if got := c.ArgIncludes["y"].Flags; len(got) != 1 || got[0].Concrete.Name != "new" {
		t.Errorf("expected later defargs to win, got %v", got)
	}

	for _, msg := range []string{"defopts redefined", "defargs redefined"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("expected warning %q, got %q", msg, buf.String())
		}
	}
}

func TestCompile_BatchSiblingsIndependent(t *testing.T) {
	c, err := CompileString(context.Background(),
		`sub (a b) { flag f { opts const v } }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := c.Main.Subs[0].Concrete.Flags[0].Concrete
	b := c.Main.Subs[1].Concrete.Flags[0].Concrete

	if a == b {
		t.Fatal("expected siblings to have distinct flags")
	}

	a.Options[0].Value = "changed"

	if b.Options[0].Value != "v" {
		t.Error("expected siblings to share no option storage")
	}
}
