package cmd

import "github.com/ardnew/tabry/pkg"

var (
	ErrNoSource    = pkg.NewError("no source input")
	ErrWriteConfig = pkg.NewError("write compiled config")
	ErrFormat      = pkg.NewError("unsupported output format")
	ErrExecutable  = pkg.NewError("cannot locate executable")
)
