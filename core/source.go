package meshcache

import (
	"fmt"

	"github.com/meigma/meshcache/core/internal/layout"
	"github.com/meigma/meshcache/core/internal/meta"
)

// Source is a live mesh object that can be cached.
type Source interface {
	// Name returns the object name.
	Name() string

	// WireColor returns the object's display colour.
	WireColor() Color

	// Transform returns the object transform after world-space modifiers.
	Transform() Matrix3

	// Geometry converts the object to triangle buffers.
	// The returned set must not be mutated while it is being written.
	Geometry() (*BufferSet, error)
}

// Destination is a live mesh object that receives restored geometry.
type Destination interface {
	// Allocate returns storage sized exactly to counts. The engine writes
	// into it before calling Commit.
	Allocate(counts Counts) (*BufferSet, error)

	// Commit converts the filled storage into the object's own
	// representation and invalidates cached topology and geometry.
	Commit(geometry *BufferSet) error

	SetTransform(tm Matrix3)
	SetWireColor(c Color)
	SetName(name string)

	// NotifyDependents tells observers the object changed.
	NotifyDependents()
}

// NewMetadata builds the metadata record for an object.
func NewMetadata(name string, tm Matrix3, color Color, counts Counts) Metadata {
	return meta.New(name, tm, color, counts)
}

// Capture reads an object's geometry and state for writing.
func Capture(src Source) (Metadata, *BufferSet, error) {
	bufs, err := src.Geometry()
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("%w: %s: %w", ErrSourceUnconvertible, src.Name(), err)
	}
	if bufs == nil {
		return Metadata{}, nil, fmt.Errorf("%w: %s: no geometry", ErrSourceUnconvertible, src.Name())
	}
	if err := bufs.Validate(); err != nil {
		return Metadata{}, nil, fmt.Errorf("%w: %s: %w", ErrSourceUnconvertible, src.Name(), err)
	}
	counts := bufs.Counts()
	if err := layout.CheckCounts(counts); err != nil {
		return Metadata{}, nil, fmt.Errorf("%w: %s: %w", ErrSourceUnconvertible, src.Name(), err)
	}
	return NewMetadata(src.Name(), src.Transform(), src.WireColor(), counts), bufs, nil
}
