package repl

import "github.com/ardnew/tabry/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds = pkg.NewError("index out of range")
	ErrNoConfig    = pkg.NewError("no config to explore")
)
