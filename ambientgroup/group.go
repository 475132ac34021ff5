// Package ambientgroup runs goroutines that each own an independent fork of
// the parent's ambient scope. It exists because a Scope belongs to exactly
// one logical call tree: handing the same scope to two goroutines would let
// an override in one leak into the other. A Group forks the parent scope
// once per task at spawn time, so every task sees the bindings that were
// visible when it started and keeps its own overrides to itself.
//
//	scope := ambient.NewScope()
//	ctx := ambientctx.WithScope(context.Background(), scope)
//
//	g := ambientgroup.New(ctx)
//	g.Go(func(ctx context.Context) error {
//	    v, err := ambientctx.Resolve(ctx, RegionKey)
//	    ...
//	})
//	err := g.Wait()
package ambientgroup

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vk/ambient"
	"github.com/vk/ambient/ambientctx"
)

// Group manages a set of tasks spawned for one parent call tree. Each task
// runs with its own forked scope attached to the task context.
type Group struct {
	eg     *errgroup.Group
	ctx    context.Context
	parent *ambient.Scope
}

// New creates a Group derived from ctx. The scope attached to ctx, if any,
// becomes the fork source for tasks; without one, tasks resolve defaults
// only. The first task error cancels the group context.
func New(ctx context.Context) *Group {
	eg, gctx := errgroup.WithContext(ctx)
	return &Group{eg: eg, ctx: gctx, parent: ambientctx.Scope(ctx)}
}

// WithLimit caps the number of tasks running concurrently. It must be called
// before the first Go. Returns the group for chaining.
func (g *Group) WithLimit(n int) *Group {
	g.eg.SetLimit(n)
	return g
}

// Go starts fn in its own goroutine. The parent scope is forked at the time
// of the call, so fn observes the bindings visible right now, not whatever
// the parent binds later.
func (g *Group) Go(fn func(ctx context.Context) error) {
	scope := g.parent.Fork()
	g.eg.Go(func() error {
		return fn(ambientctx.WithScope(g.ctx, scope))
	})
}

// Wait blocks until all tasks have completed and returns the first non-nil
// task error.
func (g *Group) Wait() error {
	return g.eg.Wait()
}
