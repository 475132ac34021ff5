// Package ambientctx carries an ambient.Scope through context.Context, so a
// call chain that already passes a ctx needs no extra plumbing to reach its
// contextual parameters. Propagation follows the logical task: wherever the
// ctx flows — across function calls, suspension points, or into goroutines
// started for the same task — the scope travels with it.
package ambientctx

import (
	"context"

	"github.com/vk/ambient"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// scopeKey is the key for the ambient.Scope in a context.Context.
var scopeKey = key{}

// WithScope returns a new context with scope attached.
func WithScope(ctx context.Context, scope *ambient.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// FromContext extracts the scope attached to ctx, reporting whether one was
// present.
func FromContext(ctx context.Context) (*ambient.Scope, bool) {
	scope, ok := ctx.Value(scopeKey).(*ambient.Scope)
	return scope, ok
}

// Scope returns the scope attached to ctx, or nil when none is attached. A
// nil scope resolves defaults only, so the result can be passed straight to
// ambient.Resolve.
func Scope(ctx context.Context) *ambient.Scope {
	scope, _ := FromContext(ctx)
	return scope
}

// Resolve reads key against the scope attached to ctx.
func Resolve[T any](ctx context.Context, k ambient.Key[T]) (T, error) {
	return ambient.Resolve(Scope(ctx), k)
}

// With binds value to k for the dynamic extent of body, installing a fresh
// scope on the context first when none is attached. body receives the
// context that carries the scope; release follows ambient.With semantics on
// all exit paths.
func With[T any](ctx context.Context, k ambient.Key[T], value T, body func(ctx context.Context) error) error {
	scope, ok := FromContext(ctx)
	if !ok {
		scope = ambient.NewScope()
		ctx = WithScope(ctx, scope)
	}
	return ambient.With(scope, k, value, func() error {
		return body(ctx)
	})
}
