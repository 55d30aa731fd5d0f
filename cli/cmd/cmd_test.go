package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/tabry/conf"
	"github.com/ardnew/tabry/locate"
)

const demoSource = `
cmd demo
flag verbose,v

sub build {
  arg {
    opts const (car bike)
  }
}

sub list
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestOpenSourcesEmpty(t *testing.T) {
	if src := openSources(nil); src != nil {
		t.Error("openSources(nil) should return nil")
	}

	if src := openSources([]string{filepath.Join(t.TempDir(), "missing")}); src != nil {
		t.Error("openSources with only missing files should return nil")
	}
}

func TestOpenSourcesMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	file1 := writeFile(t, filepath.Join(dir, "file1.tabry"), "first")
	file2 := writeFile(t, filepath.Join(dir, "file2.tabry"), "second")

	src := openSources([]string{file1, file2})
	if src == nil {
		t.Fatal("openSources should return non-nil reader")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("reading sources: %v", err)
	}

	if string(data) != "first\nsecond" {
		t.Errorf("got %q, want %q", string(data), "first\nsecond")
	}

	if diff := cmp.Diff([]string{file1, file2}, src.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenSourcesDeduplicates(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "file.tabry"), "once")
	link := filepath.Join(dir, "link.tabry")

	if err := os.Symlink(file, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	t.Chdir(dir)

	src := openSources([]string{file, link, "file.tabry", dir})
	if src == nil {
		t.Fatal("openSources should return non-nil reader")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("reading sources: %v", err)
	}

	if string(data) != "once" {
		t.Errorf("got %q, want %q", string(data), "once")
	}
}

func TestCompileRun(t *testing.T) {
	dir := t.TempDir()
	source := writeFile(t, filepath.Join(dir, "demo.tabry"), demoSource)

	var out bytes.Buffer

	c := &Compile{Format: FormatJSON, Indent: 2, Source: []string{source}}
	if err := c.Run(context.Background(), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	cfg, err := conf.Decode(out.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, out.String())
	}

	if cfg.Cmd != "demo" {
		t.Errorf("cmd = %q, want demo", cfg.Cmd)
	}

	output := filepath.Join(dir, "demo.yaml")

	c = &Compile{Output: output, Format: FormatYAML, Source: []string{source}}
	if err := c.Run(context.Background(), io.Discard); err != nil {
		t.Fatalf("Run yaml: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(data), "cmd: demo") {
		t.Errorf("yaml output missing cmd:\n%s", data)
	}
}

func TestCompileRunErrors(t *testing.T) {
	c := &Compile{Source: []string{filepath.Join(t.TempDir(), "missing.tabry")}}

	err := c.Run(context.Background(), io.Discard)
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("missing source error = %v, want ErrNoSource", err)
	}

	if _, err := Encode(conf.New(), "toml", 0); !errors.Is(err, ErrFormat) {
		t.Errorf("Encode(toml) error = %v, want ErrFormat", err)
	}
}

func demoLocator(t *testing.T) *locate.Locator {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "demo.tabry"), demoSource)
	writeFile(t, filepath.Join(dir, "other.json"), `{"cmd":"other","main":{}}`)

	t.Setenv("TABRY_IMPORT_PATH", dir)

	return locate.New(locate.WithCacheDir(""))
}

func TestCompleteRun(t *testing.T) {
	loc := demoLocator(t)

	tests := []struct {
		compline  string
		comppoint int
		want      string
	}{
		{"demo ", 5, "build\nlist\n"},
		{"demo b", 6, "build\n"},
		{"demo build ", 11, "bike\ncar\n"},
		{"demo build c", 12, "car\n"},
		{"demo -", 6, "--verbose\n"},
	}

	for _, tt := range tests {
		t.Run(tt.compline, func(t *testing.T) {
			var out bytes.Buffer

			c := &Complete{Compline: tt.compline, Comppoint: tt.comppoint}
			if err := c.Run(context.Background(), loc, &out); err != nil {
				t.Fatalf("Run: %v", err)
			}

			if diff := cmp.Diff(tt.want, out.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompleteRunUnknownCommand(t *testing.T) {
	loc := demoLocator(t)

	c := &Complete{Compline: "nope ", Comppoint: 5}

	err := c.Run(context.Background(), loc, io.Discard)
	if !errors.Is(err, locate.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCommandsRun(t *testing.T) {
	loc := demoLocator(t)

	var out bytes.Buffer
	if err := (Commands{}).Run(loc, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff("demo\nother\n", out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestReplResolve(t *testing.T) {
	loc := demoLocator(t)
	file := writeFile(t, filepath.Join(t.TempDir(), "local.tabry"), demoSource)

	got, err := (&Repl{Command: file}).resolve(loc)
	if err != nil || got != file {
		t.Errorf("resolve(file) = %q, %v; want %q", got, err, file)
	}

	got, err = (&Repl{Command: "demo"}).resolve(loc)
	if err != nil || filepath.Base(got) != "demo.tabry" {
		t.Errorf("resolve(demo) = %q, %v", got, err)
	}

	if _, err := (&Repl{Command: "nope"}).resolve(loc); !errors.Is(err, locate.ErrNotFound) {
		t.Errorf("resolve(nope) error = %v, want ErrNotFound", err)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in       string
		wantSh   string
		wantFish string
	}{
		{"plain", `'plain'`, `'plain'`},
		{"it's", `'it'"'"'s'`, `'it\'s'`},
		{`a\b`, `'a\b'`, `'a\\b'`},
		{"", `''`, `''`},
	}

	for _, tt := range tests {
		if got := quoteSh(tt.in); got != tt.wantSh {
			t.Errorf("quoteSh(%q) = %s, want %s", tt.in, got, tt.wantSh)
		}

		if got := quoteFish(tt.in); got != tt.wantFish {
			t.Errorf("quoteFish(%q) = %s, want %s", tt.in, got, tt.wantFish)
		}
	}
}

func stubExecutable(t *testing.T, path string) {
	t.Helper()

	orig := executable
	executable = func() (string, error) { return path, nil }

	t.Cleanup(func() { executable = orig })
}

func TestBashRun(t *testing.T) {
	stubExecutable(t, "/opt/bin/tabry")

	var out bytes.Buffer
	if err := (&Bash{ImportsPath: "/etc/tabry"}).Run(&out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()

	for _, want := range []string{
		"_tabry_imports_path='/etc/tabry'\n",
		"_tabry_executable='/opt/bin/tabry'\n",
		bashScript,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if !strings.HasSuffix(got, "_tabry_complete_all\n") {
		t.Error("output should end by registering all commands")
	}

	out.Reset()

	if err := (&Bash{NoAuto: true}).Run(&out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if strings.Contains(out.String(), "_tabry_imports_path=") {
		t.Error("imports path set without --imports-path")
	}

	if strings.HasSuffix(out.String(), "_tabry_complete_all\n") {
		t.Error("--no-auto output should not register commands")
	}
}

func TestFishRun(t *testing.T) {
	stubExecutable(t, "/opt/bin/tabry")

	var out bytes.Buffer
	if err := (&Fish{ImportsPath: "/etc/tabry"}).Run(&out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()

	for _, want := range []string{
		"set -x TABRY_IMPORT_PATH '/etc/tabry'\n",
		"set -g _tabry_executable '/opt/bin/tabry'\n",
		fishScript,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if !strings.HasSuffix(got, "tabry_completion_init_all\n") {
		t.Error("output should end by registering all commands")
	}
}

func TestExecutableError(t *testing.T) {
	orig := executable
	executable = func() (string, error) { return "", os.ErrNotExist }

	t.Cleanup(func() { executable = orig })

	if err := (&Bash{}).Run(io.Discard); !errors.Is(err, ErrExecutable) {
		t.Errorf("Bash error = %v, want ErrExecutable", err)
	}
}
