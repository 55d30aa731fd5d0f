package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/tabry/conf"
	"github.com/ardnew/tabry/lang"
)

// vehicles compiles testdata/vehicles.tabry.
func vehicles(t *testing.T) *conf.Conf {
	t.Helper()

	src, err := os.ReadFile(filepath.Join("testdata", "vehicles.tabry"))
	if err != nil {
		t.Fatal(err)
	}

	c, err := lang.CompileString(context.Background(), string(src))
	if err != nil {
		t.Fatalf("compile vehicles: %v", err)
	}

	return c
}
