// Package cli contains the command line interface for tabry.
//
// # Usage
//
// The shell integration scripts call the complete command on every tab
// press:
//
//	tabry complete "$COMP_LINE" "$COMP_POINT"
//
// The scripts themselves are printed by the bash and fish commands:
//
//	eval "$(tabry bash)"
//	tabry fish | source
//
// Configs are searched for in the directories given with --import-path
// followed by those in TABRY_IMPORT_PATH (colon separated, "./" when unset).
// Compiled .tabry sources are cached under the user cache directory.
//
// # Configuration
//
// Flag defaults are read from config.json, config.yaml or config.yml in the
// tabry configuration directory. Keys are flag names, with hyphens or
// underscores:
//
//	log_level: debug
//	import-path:
//	  - ~/.local/share/tabry
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --debug: Trace every parse step; also enabled by TABRY_DEBUG
//
// Logs are written to standard error so that completion output is never
// mixed with them.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tabry .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/tabry/pprof)
package cli
