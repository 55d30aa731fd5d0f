package conf

import "github.com/ardnew/tabry/pkg"

// ErrConfig is the category of every error returned by this package.
var ErrConfig = pkg.NewError("config error")

// Kinds of [ErrConfig].
var (
	ErrIO             = ErrConfig.Kind("i/o error")
	ErrJSON           = ErrConfig.Kind("invalid JSON")
	ErrInternal       = ErrConfig.Kind("internal error")
	ErrInvalidConfig  = ErrConfig.Kind("invalid config")
	ErrMissingInclude = ErrConfig.Kind("missing include")
	ErrCyclicInclude  = ErrConfig.Kind("cyclic include")
)
