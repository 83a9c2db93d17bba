package meshtype

import (
	"fmt"
	"math"
	"slices"
)

// Counts holds the element count of each buffer class.
type Counts struct {
	Vertices int
	Normals  int
	UVs      int
	Faces    int
}

// Total returns the number of elements across all six arrays, or false on overflow.
func (c Counts) Total() (int, bool) {
	total := 0
	for _, n := range []int{c.Vertices, c.Normals, c.UVs, c.Faces, c.Faces, c.Faces} {
		if n < 0 || n > math.MaxInt-total {
			return 0, false
		}
		total += n
	}
	return total, true
}

// BufferSet is the six flat arrays that make up mesh geometry.
//
// Faces, UVFaces and NormalFaces always hold one entry per face even though
// they index different spaces.
type BufferSet struct {
	Vertices    []Point3
	Normals     []Point3
	UVs         []UVVert
	Faces       []Face
	UVFaces     []TVFace
	NormalFaces []NormalFace
}

// Counts returns the element counts of the set.
func (b *BufferSet) Counts() Counts {
	return Counts{
		Vertices: len(b.Vertices),
		Normals:  len(b.Normals),
		UVs:      len(b.UVs),
		Faces:    len(b.Faces),
	}
}

// Validate checks the per-face arrays agree in length.
func (b *BufferSet) Validate() error {
	if len(b.UVFaces) != len(b.Faces) || len(b.NormalFaces) != len(b.Faces) {
		return fmt.Errorf("%w: per-face arrays disagree (faces=%d uv=%d normal=%d)",
			ErrSizeMismatch, len(b.Faces), len(b.UVFaces), len(b.NormalFaces))
	}
	return nil
}

// Match checks the set against declared counts.
func (b *BufferSet) Match(want Counts) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if got := b.Counts(); got != want {
		return fmt.Errorf("%w: buffers hold %+v, metadata declares %+v", ErrSizeMismatch, got, want)
	}
	return nil
}

// NewGeometry allocates a zeroed BufferSet sized exactly to counts.
// limit caps the total element count; zero means no cap.
func NewGeometry(counts Counts, limit int) (*BufferSet, error) {
	total, ok := counts.Total()
	if !ok {
		return nil, fmt.Errorf("%w: element counts overflow (%+v)", ErrAllocationFailed, counts)
	}
	if limit > 0 && total > limit {
		return nil, fmt.Errorf("%w: %d elements exceeds limit %d", ErrAllocationFailed, total, limit)
	}
	return &BufferSet{
		Vertices:    make([]Point3, counts.Vertices),
		Normals:     make([]Point3, counts.Normals),
		UVs:         make([]UVVert, counts.UVs),
		Faces:       make([]Face, counts.Faces),
		UVFaces:     make([]TVFace, counts.Faces),
		NormalFaces: make([]NormalFace, counts.Faces),
	}, nil
}

// Clone returns a deep copy of the set.
func (b *BufferSet) Clone() *BufferSet {
	if b == nil {
		return nil
	}
	return &BufferSet{
		Vertices:    slices.Clone(b.Vertices),
		Normals:     slices.Clone(b.Normals),
		UVs:         slices.Clone(b.UVs),
		Faces:       slices.Clone(b.Faces),
		UVFaces:     slices.Clone(b.UVFaces),
		NormalFaces: slices.Clone(b.NormalFaces),
	}
}
