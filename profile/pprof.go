//go:build pprof

package profile

import (
	"maps"
	"slices"

	"github.com/pkg/profile"
)

var modes = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns the supported profiling modes, sorted.
func Modes() []string { return slices.Sorted(maps.Keys(modes)) }

func start(mode, dir string) (Profiler, bool) {
	fn, ok := modes[mode]
	if !ok {
		return nil, false
	}

	opts := []func(*profile.Profile){fn, profile.Quiet}
	if dir != "" {
		opts = append(opts, profile.ProfilePath(dir))
	}

	return profile.Start(opts...), true
}
