package locate

import "github.com/ardnew/tabry/pkg"

var (
	// ErrNotFound is returned when no config exists for a command.
	ErrNotFound = pkg.NewError("config not found")
	// ErrCache is returned when a compiled config cannot be cached.
	ErrCache = pkg.NewError("cannot cache compiled config")
)
