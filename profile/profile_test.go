package profile

import (
	"errors"
	"slices"
	"testing"
)

func TestStart_EmptyMode(t *testing.T) {
	p, err := Start("", t.TempDir())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	p.Stop()
}

func TestStart_UnknownMode(t *testing.T) {
	if _, err := Start("quiet", t.TempDir()); !errors.Is(err, ErrMode) {
		t.Errorf("Start(quiet) error = %v, want ErrMode", err)
	}
}

func TestModes_Sorted(t *testing.T) {
	modes := Modes()
	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, want sorted", modes)
	}

	if slices.Contains(modes, "quiet") {
		t.Error("Modes() should not list quiet")
	}
}
