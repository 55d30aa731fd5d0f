package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ardnew/tabry/cli/cmd/repl"
	"github.com/ardnew/tabry/locate"
	"github.com/ardnew/tabry/log"
	"github.com/ardnew/tabry/pkg"
)

// Repl starts an interactive completion explorer.
type Repl struct {
	Command string `arg:"" help:"Command name on the import path, or a path to a .tabry or .json config." name:"command"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, loc *locate.Locator) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	path, err := r.resolve(loc)
	if err != nil {
		return err
	}

	cfg, err := loc.Load(ctx, path)
	if err != nil {
		return err
	}

	cacheDir := kongVar(ctx, CacheIdentifier, pkg.CacheDir())

	return repl.Run(ctx, cfg, filepath.Join(cacheDir, "repl"), log.Default())
}

// resolve returns r.Command itself when it names a config file, and otherwise
// searches the import path.
func (r *Repl) resolve(loc *locate.Locator) (string, error) {
	switch filepath.Ext(r.Command) {
	case locate.ExtTabry, locate.ExtJSON:
		if info, err := os.Stat(r.Command); err == nil && !info.IsDir() {
			return r.Command, nil
		}
	}

	return loc.Find(r.Command)
}
