package locate

import "github.com/ardnew/tabry/log"

// Option configures a [Locator].
type Option func(*Locator)

// WithImportPath puts dirs ahead of the directories from the environment.
func WithImportPath(dirs ...string) Option {
	return func(l *Locator) {
		l.extra = append(l.extra, dirs...)
	}
}

// WithCacheDir sets the directory of compiled configs. An empty dir disables
// the cache.
func WithCacheDir(dir string) Option {
	return func(l *Locator) {
		l.cacheDir = dir
	}
}

// WithLogger sets the logger used for cache diagnostics and compilation.
func WithLogger(logger log.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}
