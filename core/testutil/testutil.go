// Package testutil provides mesh fixtures and mock hosts for tests.
package testutil

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/meigma/meshcache/core/internal/meshtype"
)

// Quad returns the unit quad on the XY plane: four vertices, two faces,
// one up-facing normal and four UVs, with an identity transform.
func Quad() *meshtype.BufferSet {
	return &meshtype.BufferSet{
		Vertices: []meshtype.Point3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Normals: []meshtype.Point3{{X: 0, Y: 0, Z: 1}},
		UVs: []meshtype.UVVert{
			{U: 0, V: 0},
			{U: 1, V: 0},
			{U: 1, V: 1},
			{U: 0, V: 1},
		},
		Faces: []meshtype.Face{
			{V: [3]uint32{0, 1, 2}, SmGroup: 1, Flags: meshtype.EdgeA | meshtype.EdgeB},
			{V: [3]uint32{0, 2, 3}, SmGroup: 1, Flags: meshtype.EdgeB | meshtype.EdgeC},
		},
		UVFaces: []meshtype.TVFace{
			{T: [3]uint32{0, 1, 2}},
			{T: [3]uint32{0, 2, 3}},
		},
		NormalFaces: []meshtype.NormalFace{
			{N: [3]uint32{0, 0, 0}, Specified: 1},
			{N: [3]uint32{0, 0, 0}, Specified: 1},
		},
	}
}

// RandomBufferSet returns a deterministic pseudo-random mesh with the given
// element counts. Indices stay within their target arrays.
func RandomBufferSet(seed uint64, vertices, faces int) *meshtype.BufferSet {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	normals := max(vertices/2, 1)
	uvs := max(vertices, 1)
	vertices = max(vertices, 1)

	b := &meshtype.BufferSet{
		Vertices:    make([]meshtype.Point3, vertices),
		Normals:     make([]meshtype.Point3, normals),
		UVs:         make([]meshtype.UVVert, uvs),
		Faces:       make([]meshtype.Face, faces),
		UVFaces:     make([]meshtype.TVFace, faces),
		NormalFaces: make([]meshtype.NormalFace, faces),
	}
	for i := range b.Vertices {
		b.Vertices[i] = meshtype.Point3{X: rng.Float32(), Y: rng.Float32(), Z: rng.Float32()}
	}
	for i := range b.Normals {
		b.Normals[i] = meshtype.Point3{X: rng.Float32(), Y: rng.Float32(), Z: 1}
	}
	for i := range b.UVs {
		b.UVs[i] = meshtype.UVVert{U: rng.Float32(), V: rng.Float32()}
	}
	idx := func(n int) [3]uint32 {
		return [3]uint32{rng.Uint32N(uint32(n)), rng.Uint32N(uint32(n)), rng.Uint32N(uint32(n))} //nolint:gosec // fixture sizes are small
	}
	for i := range faces {
		b.Faces[i] = meshtype.Face{V: idx(vertices), SmGroup: rng.Uint32(), Flags: rng.Uint32N(8)}
		b.UVFaces[i] = meshtype.TVFace{T: idx(uvs)}
		b.NormalFaces[i] = meshtype.NormalFace{N: idx(normals), Specified: rng.Uint32N(2)}
	}
	return b
}

// MockSource implements a live mesh source for tests.
type MockSource struct {
	ObjName   string
	Color     meshtype.Color
	TM        meshtype.Matrix3
	Buffers   *meshtype.BufferSet
	ConvertFn func() error
}

// Name returns the object name.
func (s *MockSource) Name() string { return s.ObjName }

// WireColor returns the display colour.
func (s *MockSource) WireColor() meshtype.Color { return s.Color }

// Transform returns the object transform.
func (s *MockSource) Transform() meshtype.Matrix3 { return s.TM }

// Geometry returns Buffers, or the error from ConvertFn.
func (s *MockSource) Geometry() (*meshtype.BufferSet, error) {
	if s.ConvertFn != nil {
		if err := s.ConvertFn(); err != nil {
			return nil, err
		}
	}
	return s.Buffers, nil
}

// ErrAllocate is returned by MockDestination.Allocate when FailAllocate is set.
var ErrAllocate = errors.New("testutil: allocate failed")

// MockDestination records everything a restore does to it.
// It is safe for concurrent use.
type MockDestination struct {
	// FailAllocate makes Allocate fail.
	FailAllocate bool

	// Limit caps the allocation size in elements; zero means no cap.
	Limit int

	mu       sync.Mutex
	geometry *meshtype.BufferSet
	tm       meshtype.Matrix3
	color    meshtype.Color
	name     string
	notified int
	calls    []string
}

// Allocate sizes storage to counts.
func (d *MockDestination) Allocate(counts meshtype.Counts) (*meshtype.BufferSet, error) {
	d.record("allocate")
	if d.FailAllocate {
		return nil, ErrAllocate
	}
	return meshtype.NewGeometry(counts, d.Limit)
}

// Commit keeps the filled storage.
func (d *MockDestination) Commit(geometry *meshtype.BufferSet) error {
	d.record("commit")
	d.mu.Lock()
	defer d.mu.Unlock()
	d.geometry = geometry
	return nil
}

// SetTransform records the transform.
func (d *MockDestination) SetTransform(tm meshtype.Matrix3) {
	d.record("transform")
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tm = tm
}

// SetWireColor records the colour.
func (d *MockDestination) SetWireColor(c meshtype.Color) {
	d.record("color")
	d.mu.Lock()
	defer d.mu.Unlock()
	d.color = c
}

// SetName records the name.
func (d *MockDestination) SetName(name string) {
	d.record("name")
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
}

// NotifyDependents counts notifications.
func (d *MockDestination) NotifyDependents() {
	d.record("notify")
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notified++
}

// Geometry returns the committed geometry.
func (d *MockDestination) Geometry() *meshtype.BufferSet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.geometry
}

// Transform returns the last transform set.
func (d *MockDestination) Transform() meshtype.Matrix3 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tm
}

// WireColor returns the last colour set.
func (d *MockDestination) WireColor() meshtype.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.color
}

// Name returns the last name set.
func (d *MockDestination) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// Notified returns how many times dependents were notified.
func (d *MockDestination) Notified() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notified
}

// Calls returns the method names invoked, in order.
func (d *MockDestination) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *MockDestination) record(call string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call)
}
