package repl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistory_WriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", baseHistory)

	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"build car", modeLine},
		{"tree", modeCtrl},
		{"list", modeLine},
		{"list", modeLine},
		{"build car", modeLine},
	} {
		if err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatalf("Write(%q): %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"tree", modeCtrl},
		{"list", modeLine},
		{"build car", modeLine},
	}

	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff(want, reloaded.Entries()); diff != "" {
		t.Errorf("reloaded entries mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_LoadUnprefixed(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	if err := os.WriteFile(path, []byte("old line\n\nC:quit\nL:build\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []HistoryEntry{
		{"old line", modeLine},
		{"quit", modeCtrl},
		{"build", modeLine},
	}

	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_Memory(t *testing.T) {
	h := NewHistory("")

	if err := h.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := h.Write("  ", modeLine); err != nil {
		t.Fatalf("Write blank: %v", err)
	}

	if err := h.Write("build", modeLine); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}

	if _, err := h.GetEntry(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry(1) error = %v, want ErrOutOfBounds", err)
	}

	e, err := h.GetEntry(0)
	if err != nil || e.Line != "build" {
		t.Errorf("GetEntry(0) = %v, %v", e, err)
	}
}
