package meshcache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/meigma/meshcache/core/internal/fanout"
)

// Apply copies bufs into dst and then applies md's transform, colour and name.
// With WithGeometryOnly the object state is left as it was.
//
// Storage is allocated through dst sized exactly to md's counts. With
// StrategyParallel the vertex, normal, uv and face copies run as chunked
// tasks on a bounded pool and are all joined before anything else touches
// dst; both strategies leave dst with identical contents.
func Apply(ctx context.Context, dst Destination, md Metadata, bufs *BufferSet, opts ...RestoreOption) error {
	cfg := restoreConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &restorer{cfg: cfg, logger: cfg.logger}
	start := time.Now()

	if bufs == nil {
		return fmt.Errorf("%w: nil buffer set", ErrInvalidArgument)
	}
	if err := bufs.Match(md.Counts); err != nil {
		return err
	}

	geo, err := dst.Allocate(md.Counts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	}
	if geo == nil || geo.Match(md.Counts) != nil {
		return fmt.Errorf("%w: destination storage does not match %+v", ErrAllocationFailed, md.Counts)
	}

	r.log().Debug("restoring geometry", "object", md.Name, "strategy", cfg.strategy.String())

	switch cfg.strategy {
	case StrategySequential:
		copySequential(geo, bufs)
	case StrategyParallel:
		if err := r.copyParallel(ctx, geo, bufs); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown restore strategy %d", ErrInvalidArgument, cfg.strategy)
	}

	if err := dst.Commit(geo); err != nil {
		return fmt.Errorf("commit geometry: %w", err)
	}
	if !cfg.geometry {
		dst.SetTransform(md.Transform)
		dst.SetWireColor(md.WireColor)
		dst.SetName(md.Name)
	}
	dst.NotifyDependents()

	r.log().Debug("geometry restored", "object", md.Name, "elapsed", time.Since(start))
	return nil
}

// restorer holds state for one Apply call.
type restorer struct {
	cfg    restoreConfig
	logger *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (r *restorer) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

func copySequential(dst, src *BufferSet) {
	copy(dst.Vertices, src.Vertices)
	copy(dst.Normals, src.Normals)
	copy(dst.UVs, src.UVs)
	copy(dst.Faces, src.Faces)
	copy(dst.UVFaces, src.UVFaces)
	copy(dst.NormalFaces, src.NormalFaces)
}

// copyParallel schedules the four copy phases on one pool and joins them.
func (r *restorer) copyParallel(ctx context.Context, dst, src *BufferSet) error {
	g := fanout.New(ctx, r.cfg.workers, r.cfg.chunk)

	fanout.Copy(g, dst.Vertices, src.Vertices)
	fanout.Copy(g, dst.Normals, src.Normals)
	fanout.Copy(g, dst.UVs, src.UVs)
	g.Each(len(src.Faces), func(lo, hi int) {
		copy(dst.Faces[lo:hi], src.Faces[lo:hi])
		copy(dst.UVFaces[lo:hi], src.UVFaces[lo:hi])
		copy(dst.NormalFaces[lo:hi], src.NormalFaces[lo:hi])
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return nil
}
