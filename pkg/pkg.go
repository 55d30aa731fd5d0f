//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the tabry module embedded at build time.
//
//go:embed VERSION
var version string

// Version returns the trimmed contents of the embedded VERSION file.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "tabry"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Shell tab-completion driven by a small configuration language"
)

// Environment variables recognized by tabry and the shell integration scripts.
const (
	// EnvImportPath is a colon-separated list of directories searched for
	// "<command>.tabry" and "<command>.json" configs.
	EnvImportPath = "TABRY_IMPORT_PATH"
	// EnvDebug enables trace-level step logging when set to anything other
	// than "", "0" or "false".
	EnvDebug = "TABRY_DEBUG"
	// EnvAutocompleteState carries the JSON parse state to shell option
	// providers.
	EnvAutocompleteState = "TABRY_AUTOCOMPLETE_STATE"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
