// Package memscene is an in-memory host for meshcache: a scene of mesh
// nodes and a grouped undo history.
package memscene

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/meigma/meshcache"
	meshcore "github.com/meigma/meshcache/core"
)

// ErrNotMesh is returned by Geometry for nodes that hold no mesh.
var ErrNotMesh = errors.New("memscene: node is not a mesh")

// Interface compliance.
var (
	_ meshcache.Scene = (*Scene)(nil)
	_ meshcache.Node  = (*Node)(nil)
)

// Scene holds nodes in creation order. It is safe for concurrent use.
type Scene struct {
	mu    sync.Mutex
	nodes []*Node

	// Limit caps node allocations in elements; zero means no cap.
	Limit int
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// CreateNode adds an empty editable mesh node.
func (s *Scene) CreateNode(name string) (meshcache.Node, error) {
	return s.Add(name, &meshcore.BufferSet{}), nil
}

// Add inserts an editable mesh node holding a copy of mesh.
func (s *Scene) Add(name string, mesh *meshcore.BufferSet) *Node {
	n := &Node{
		name:     name,
		tm:       meshcore.Identity(),
		mesh:     mesh.Clone(),
		editable: true,
		limit:    s.Limit,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, n)
	return n
}

// AddHelper inserts a node with no geometry, like a light or a camera.
func (s *Scene) AddHelper(name string) *Node {
	n := &Node{name: name, tm: meshcore.Identity()}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, n)
	return n
}

// RemoveNode deletes n from the scene.
func (s *Scene) RemoveNode(n meshcache.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = slices.DeleteFunc(s.nodes, func(m *Node) bool {
		return meshcache.Node(m) == n
	})
}

// Nodes returns the scene's nodes in creation order.
func (s *Scene) Nodes() []*Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.nodes)
}

// Find returns the first node named name.
func (s *Scene) Find(name string) (*Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.nodes {
		if n.Name() == name {
			return n, true
		}
	}
	return nil, false
}

// Node is a mesh object with a transform, a wire colour and a name.
// It is safe for concurrent use.
type Node struct {
	mu       sync.Mutex
	name     string
	color    meshcore.Color
	tm       meshcore.Matrix3
	mesh     *meshcore.BufferSet
	editable bool
	limit    int
	notified int
}

// Name returns the node name.
func (n *Node) Name() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.name
}

// WireColor returns the node colour.
func (n *Node) WireColor() meshcore.Color {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.color
}

// Transform returns the node transform.
func (n *Node) Transform() meshcore.Matrix3 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tm
}

// Geometry returns a copy of the mesh.
func (n *Node) Geometry() (*meshcore.BufferSet, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.mesh == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotMesh, n.name)
	}
	return n.mesh.Clone(), nil
}

// Mesh returns a copy of the mesh, or nil for helpers.
func (n *Node) Mesh() *meshcore.BufferSet {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.mesh.Clone()
}

// Allocate returns zeroed storage sized to counts.
func (n *Node) Allocate(counts meshcore.Counts) (*meshcore.BufferSet, error) {
	return meshcore.NewGeometry(counts, n.limit)
}

// Commit replaces the mesh with geometry.
func (n *Node) Commit(geometry *meshcore.BufferSet) error {
	if geometry == nil {
		return errors.New("memscene: nil geometry")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mesh = geometry
	return nil
}

// SetTransform sets the node transform.
func (n *Node) SetTransform(tm meshcore.Matrix3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tm = tm
}

// SetWireColor sets the node colour.
func (n *Node) SetWireColor(c meshcore.Color) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.color = c
}

// SetName renames the node.
func (n *Node) SetName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.name = name
}

// NotifyDependents counts change notifications.
func (n *Node) NotifyDependents() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified++
}

// Notified returns how many change notifications the node has seen.
func (n *Node) Notified() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.notified
}

// Editable reports whether the node holds a mesh.
func (n *Node) Editable() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.editable
}

type snapshot struct {
	mesh *meshcore.BufferSet
}

func (s *snapshot) Release() {
	s.mesh = nil
}

// Snapshot captures a copy of the mesh.
func (n *Node) Snapshot() meshcache.Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return &snapshot{mesh: n.mesh.Clone()}
}

// RestoreSnapshot puts a captured mesh back. Released or foreign
// snapshots are ignored.
func (n *Node) RestoreSnapshot(s meshcache.Snapshot) {
	snap, ok := s.(*snapshot)
	if !ok || snap.mesh == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mesh = snap.mesh.Clone()
}
