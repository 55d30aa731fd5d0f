package lang

import (
	"log/slog"

	"github.com/ardnew/tabry/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrLex     = pkg.NewError("lex error")
	ErrParse   = pkg.NewError("parse error")
	ErrCompile = pkg.NewError("compile error")
	ErrRead    = pkg.NewError("failed to read input")
)

// at annotates err with a source position.
func at(err *pkg.Error, pos Position) *pkg.Error {
	return err.With(
		slog.Int("line", pos.Line),
		slog.Int("column", pos.Column),
	)
}
