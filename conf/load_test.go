package conf

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleJSON = `{
  "cmd": "vehicles",
  "main": {
    "flags": [{"name": "verbose", "aliases": ["v"]}],
    "subs": [
      {"include": "moves"},
      {
        "name": "build",
        "args": [{"options": [{"type": "include", "value": "vehicle-types"}], "varargs": true}]
      }
    ]
  },
  "arg_includes": {
    "moves": {"subs": [{"name": "move", "aliases": ["m"]}]}
  },
  "option_includes": {
    "vehicle-types": [{"type": "const", "value": "car"}, {"type": "file"}]
  }
}`

func TestDecode(t *testing.T) {
	c, err := Decode([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Conf{
		Cmd: "vehicles",
		Main: ConcreteSub{
			Flags: []Flag{Of(&ConcreteFlag{Name: "verbose", Aliases: []string{"v"}})},
			Subs: []Sub{
				Ref[ConcreteSub]("moves"),
				Of(&ConcreteSub{
					Name: "build",
					Args: []Arg{Of(&ConcreteArg{
						Options: []Opt{{Type: OptInclude, Value: "vehicle-types"}},
						Varargs: true,
					})},
				}),
			},
		},
		ArgIncludes: map[string]*ArgInclude{
			"moves": {Subs: []Sub{Of(&ConcreteSub{Name: "move", Aliases: []string{"m"}})}},
		},
		OptionIncludes: map[string][]Opt{
			"vehicle-types": {{Type: OptConst, Value: "car"}, {Type: OptFile}},
		},
	}

	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEntry_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		entry Sub
		want  string
	}{
		{
			name:  "reference",
			entry: Ref[ConcreteSub]("moves"),
			want:  `{"include":"moves"}`,
		},
		{
			name:  "concrete",
			entry: Of(&ConcreteSub{Name: "go", Aliases: []string{"g"}}),
			want:  `{"name":"go","aliases":["g"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.entry)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", `{"main": `},
		{"null entry", `{"main": {"subs": [null]}}`},
		{"wrong type", `{"main": {"subs": [{"name": 3}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			if !errors.Is(err, ErrJSON) {
				t.Errorf("expected ErrJSON, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vehicles.json")

	if err := os.WriteFile(path, []byte(sampleJSON), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Cmd != "vehicles" {
		t.Errorf("expected cmd %q, got %q", "vehicles", c.Cmd)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}
