// Package fanout splits index ranges into chunk tasks on an errgroup.
//
// Tasks scheduled by one call cover disjoint ranges, so callers writing to
// distinct destination slots need no locking. Nothing is complete until the
// group's Wait returns.
package fanout

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunk is the number of elements per task when none is given.
const DefaultChunk = 16 << 10

// Group schedules chunk tasks onto a bounded errgroup.
type Group struct {
	eg    *errgroup.Group
	ctx   context.Context
	chunk int
}

// New returns a Group running at most workers tasks at once.
// workers <= 0 uses GOMAXPROCS; chunk <= 0 uses DefaultChunk.
func New(ctx context.Context, workers, chunk int) *Group {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	return &Group{eg: eg, ctx: gctx, chunk: chunk}
}

// Each schedules fn over [0, n) in chunk-sized ranges.
func (g *Group) Each(n int, fn func(lo, hi int)) {
	for lo := 0; lo < n; lo += g.chunk {
		hi := min(lo+g.chunk, n)
		g.eg.Go(func() error {
			if err := g.ctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}
}

// Wait blocks until every scheduled task has returned.
func (g *Group) Wait() error {
	return g.eg.Wait()
}

// Copy schedules copy(dst, src) in chunks. dst and src must have equal length.
func Copy[T any](g *Group, dst, src []T) {
	g.Each(len(src), func(lo, hi int) {
		copy(dst[lo:hi], src[lo:hi])
	})
}
