// Package cmd implements the subcommands of the tabry command line.
//
// The shell integration calls [Complete] on every tab press; the remaining
// commands compile configs, list completable commands, print the shell
// integration scripts, and explore a config interactively.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path of
	// the configuration file.
	ConfigIdentifier = "config"
)
