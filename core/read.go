package meshcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meigma/meshcache/core/internal/archive"
	"github.com/meigma/meshcache/core/internal/layout"
	"github.com/meigma/meshcache/core/internal/meta"
)

// ReadPackage extracts and validates the package at path.
//
// The metadata entry is decoded first; every buffer entry must then be an
// exact multiple of its element size and hold exactly the number of elements
// the metadata declares.
func ReadPackage(ctx context.Context, path string, opts ...ReadOption) (Metadata, *BufferSet, error) {
	cfg := newReadConfig(opts)
	start := time.Now()

	ar, err := archive.Open(path, cfg.maxEntrySize)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	defer ar.Close()

	md, bufs, err := readArchive(ctx, ar)
	if err != nil {
		return Metadata{}, nil, err
	}
	cfg.log().Debug("package read",
		"path", path,
		"object", md.Name,
		"vertices", md.Counts.Vertices,
		"faces", md.Counts.Faces,
		"elapsed", time.Since(start),
	)
	return md, bufs, nil
}

// DecodePackage extracts and validates a package held in memory.
func DecodePackage(ctx context.Context, data []byte, opts ...ReadOption) (Metadata, *BufferSet, error) {
	cfg := newReadConfig(opts)
	ar, err := archive.NewReader(bytes.NewReader(data), int64(len(data)), cfg.maxEntrySize)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("%w: open in-memory package: %w", ErrIO, err)
	}
	return readArchive(ctx, ar)
}

// ReadMetadata decodes only the metadata entry of the package at path.
func ReadMetadata(path string, opts ...ReadOption) (Metadata, error) {
	cfg := newReadConfig(opts)
	ar, err := archive.Open(path, cfg.maxEntrySize)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	defer ar.Close()
	return readMetadata(ar)
}

func readArchive(ctx context.Context, ar *archive.Reader) (Metadata, *BufferSet, error) {
	md, err := readMetadata(ar)
	if err != nil {
		return Metadata{}, nil, err
	}

	entries := make(map[string][]byte, len(layout.BufferEntries))
	for _, name := range layout.BufferEntries {
		if err := ctx.Err(); err != nil {
			return Metadata{}, nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		data, err := extract(ar, name)
		if err != nil {
			return Metadata{}, nil, err
		}
		entries[name] = data
	}

	bufs, err := layout.DecodeBuffers(entries, md.Counts)
	if err != nil {
		return Metadata{}, nil, err
	}
	return md, bufs, nil
}

func readMetadata(ar *archive.Reader) (Metadata, error) {
	data, err := extract(ar, layout.EntryMeta)
	if err != nil {
		return Metadata{}, err
	}
	return meta.Decode(data)
}

// extract reads one entry, classifying failures that are not already typed as I/O.
func extract(ar *archive.Reader, name string) ([]byte, error) {
	data, err := ar.Extract(name)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, ErrMissingEntry):
		return nil, err
	case errors.Is(err, archive.ErrEntryTooLarge):
		return nil, fmt.Errorf("%w: %w", ErrSizeMismatch, err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
}
