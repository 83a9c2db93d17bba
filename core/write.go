package meshcache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/meigma/meshcache/core/internal/archive"
	"github.com/meigma/meshcache/core/internal/checkpoint"
	"github.com/meigma/meshcache/core/internal/layout"
	"github.com/meigma/meshcache/core/internal/meta"
	"github.com/meigma/meshcache/core/internal/stage"
)

const packageDirPerm = 0o750

// WritePackage writes md and bufs as a package at path.
//
// The archive is built in a temporary file beside path and renamed over it
// once complete, so a failed write never leaves a partial package and never
// disturbs an existing one. Writes are last-writer-wins.
func WritePackage(ctx context.Context, path string, md Metadata, bufs *BufferSet, opts ...WriteOption) error {
	w := newWriter(opts)
	start := time.Now()

	if err := validateWrite(md, bufs); err != nil {
		return err
	}

	w.log().Debug("writing package",
		"path", path,
		"object", md.Name,
		"buffering", w.cfg.buffering.String(),
		"compression", w.cfg.level.String(),
		"method", w.cfg.method.String(),
	)
	if err := w.writeFile(ctx, path, md, bufs); err != nil {
		return err
	}
	w.log().Debug("package written", "path", path, "elapsed", time.Since(start))
	return nil
}

// EncodePackage writes md and bufs as a package archive to out.
func EncodePackage(ctx context.Context, out io.Writer, md Metadata, bufs *BufferSet, opts ...WriteOption) error {
	w := newWriter(opts)
	if err := validateWrite(md, bufs); err != nil {
		return err
	}
	return w.encode(ctx, out, md, bufs)
}

func validateWrite(md Metadata, bufs *BufferSet) error {
	if bufs == nil {
		return fmt.Errorf("%w: nil buffer set", ErrInvalidArgument)
	}
	if err := layout.CheckCounts(md.Counts); err != nil {
		return err
	}
	return bufs.Match(md.Counts)
}

// writer holds state for one package write.
type writer struct {
	cfg    writeConfig
	logger *slog.Logger
}

func newWriter(opts []WriteOption) *writer {
	cfg := writeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &writer{cfg: cfg, logger: cfg.logger}
}

// log returns the logger, falling back to a discard logger if nil.
func (w *writer) log() *slog.Logger {
	if w.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.logger
}

// encode stages every entry and archives them to out in entry order.
// Staged data is released on every path.
func (w *writer) encode(ctx context.Context, out io.Writer, md Metadata, bufs *BufferSet) (err error) {
	stager, err := stage.New(w.cfg.buffering, w.cfg.tempDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if closeErr := stager.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: release staging: %w", ErrIO, closeErr)
		}
	}()

	blobs := append(layout.EncodeBuffers(bufs), layout.Blob{Name: layout.EntryMeta, Data: meta.Encode(md)})
	for _, b := range blobs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		if err := stager.Put(b.Name, b.Data); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	aw, err := archive.NewWriter(out, w.cfg.method, w.cfg.level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	for _, name := range layout.Entries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		if err := stager.AddTo(aw, name); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if err := aw.Close(); err != nil {
		return fmt.Errorf("%w: finish archive: %w", ErrIO, err)
	}
	return nil
}

// writeFile encodes into a temp file beside path and renames it into place.
func (w *writer) writeFile(ctx context.Context, path string, md Metadata, bufs *BufferSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, packageDirPerm); err != nil {
		return fmt.Errorf("%w: create package directory: %w", ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, checkpoint.TempPattern(filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("%w: create temp package: %w", ErrIO, err)
	}
	tmpPath := tmp.Name()

	if err := w.encode(ctx, tmp, md, bufs); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp package: %w", ErrIO, err)
	}

	if err := replaceFile(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// replaceFile moves src over path in one rename.
func replaceFile(src, path string) error {
	if err := os.Rename(src, path); err != nil {
		return fmt.Errorf("rename package: %w", err)
	}
	return nil
}

// PackageName returns the file name for an object's package.
//
// Plain caches are "<object>.<ext>"; checkpoints are
// "<object>-<timestamp>.<ext>" with the timestamp taken from now. The result
// is lower-cased, and path separators in the object name become '_'.
func PackageName(object, ext string, isCheckpoint bool, now time.Time) string {
	return checkpoint.FileName(object, ext, isCheckpoint, now)
}

// CheckpointSuffix formats t as a checkpoint timestamp (YYYY-MM-DD-HH-MM-SS.mmm).
func CheckpointSuffix(t time.Time) string {
	return checkpoint.Suffix(t)
}

// ParseCheckpointSuffix recovers the instant encoded by CheckpointSuffix.
func ParseCheckpointSuffix(s string) (time.Time, error) {
	return checkpoint.Parse(s)
}
