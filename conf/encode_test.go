package conf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConf_Encode(t *testing.T) {
	c, err := Decode([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	compact, err := c.Encode(0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if bytes.Count(compact, []byte("\n")) != 1 {
		t.Errorf("expected a single line, got:\n%s", compact)
	}

	indented, err := c.Encode(2)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if !strings.Contains(string(indented), "\n  \"main\": {") {
		t.Errorf("expected two-space indentation, got:\n%s", indented)
	}

	again, err := Decode(indented)
	if err != nil {
		t.Fatalf("decode encoded: %v", err)
	}

	if diff := cmp.Diff(c, again); diff != "" {
		t.Errorf("encoding changed the config (-want +got):\n%s", diff)
	}
}

func TestConf_EncodeYAML(t *testing.T) {
	c := New()
	c.Cmd = "vehicles"
	c.Main.Subs = []Sub{Ref[ConcreteSub]("moves")}

	data, err := c.EncodeYAML()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	for _, want := range []string{"cmd: vehicles", "include: moves"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %q in:\n%s", want, data)
		}
	}

	if strings.Index(string(data), "cmd:") > strings.Index(string(data), "main:") {
		t.Errorf("expected key order of the JSON encoding, got:\n%s", data)
	}
}
