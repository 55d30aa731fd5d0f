// Package profile starts runtime profilers for the tabry command.
//
// Profilers are compiled in only with the pprof build tag:
//
//	go build -tags pprof -o tabry .
//	tabry --pprof-mode cpu complete "vehicles move " 14
//
// Without the tag [Modes] is empty and [Start] only accepts the empty mode.
// Each profile is written to its own file in the chosen directory
// (cpu.pprof, mem.pprof, trace.out, ...) for inspection with go tool pprof:
//
//	go tool pprof -http=: ~/.cache/tabry/pprof/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
