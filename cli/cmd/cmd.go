package cmd

import (
	"context"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named key, or def when there is none.
func kongVar(ctx context.Context, key, def string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return def
	}

	if v, ok := ktx.Model.Vars()[key]; ok {
		return v
	}

	return def
}
