package engine

import "github.com/ardnew/tabry/pkg"

// ErrShell is returned by [ExecShell] when the command fails. The [Finder]
// only logs it.
var ErrShell = pkg.NewError("shell option failed")
