package memscene

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	meshcore "github.com/meigma/meshcache/core"
	"github.com/meigma/meshcache/core/testutil"
)

func TestSceneNodes(t *testing.T) {
	t.Parallel()

	s := New()
	a := s.Add("A", testutil.Quad())
	created, err := s.CreateNode("B")
	require.NoError(t, err)
	h := s.AddHelper("Light")

	assert.Len(t, s.Nodes(), 3)
	found, ok := s.Find("B")
	require.True(t, ok)
	assert.Same(t, created, found)

	s.RemoveNode(created)
	assert.Equal(t, []*Node{a, h}, s.Nodes())
	_, ok = s.Find("B")
	assert.False(t, ok)
}

func TestNodeGeometryIsCopy(t *testing.T) {
	t.Parallel()

	n := New().Add("A", testutil.Quad())
	g, err := n.Geometry()
	require.NoError(t, err)
	g.Vertices[0].X = 99
	assert.Equal(t, testutil.Quad(), n.Mesh())
}

func TestHelperNotMesh(t *testing.T) {
	t.Parallel()

	n := New().AddHelper("Cam")
	assert.False(t, n.Editable())
	_, err := n.Geometry()
	require.ErrorIs(t, err, ErrNotMesh)
	assert.Nil(t, n.Mesh())
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	n := New().Add("A", testutil.Quad())
	snap := n.Snapshot()
	require.NoError(t, n.Commit(&meshcore.BufferSet{}))
	assert.Empty(t, n.Mesh().Vertices)

	n.RestoreSnapshot(snap)
	assert.Equal(t, testutil.Quad(), n.Mesh())

	snap.Release()
	require.NoError(t, n.Commit(&meshcore.BufferSet{}))
	n.RestoreSnapshot(snap)
	assert.Empty(t, n.Mesh().Vertices)
}

func TestAllocateLimit(t *testing.T) {
	t.Parallel()

	s := New()
	s.Limit = 10
	n, err := s.CreateNode("A")
	require.NoError(t, err)
	_, err = n.Allocate(meshcore.Counts{Vertices: 11})
	require.ErrorIs(t, err, meshcore.ErrAllocationFailed)
}

type recordingOp struct {
	log    *[]string
	name   string
	closed bool
}

func (o *recordingOp) Undo() { *o.log = append(*o.log, "undo "+o.name) }

func (o *recordingOp) Redo(context.Context) error {
	*o.log = append(*o.log, "redo "+o.name)
	return nil
}

func (o *recordingOp) Close() { o.closed = true }

func TestHistory(t *testing.T) {
	t.Parallel()

	var log []string
	h := NewHistory()
	a := &recordingOp{log: &log, name: "a"}
	b := &recordingOp{log: &log, name: "b"}

	h.Begin()
	h.Put(a)
	h.Put(b)
	h.Accept("two ops")
	assert.Equal(t, []string{"two ops"}, h.Labels())

	label, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, "two ops", label)
	_, err = h.Redo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"undo b", "undo a", "redo a", "redo b"}, log)

	_, err = h.Redo(context.Background())
	require.ErrorIs(t, err, ErrNothingToUndo)

	h.Close()
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	_, err = h.Undo()
	require.ErrorIs(t, err, ErrNothingToUndo)
}

func TestHistoryCancel(t *testing.T) {
	t.Parallel()

	var log []string
	h := NewHistory()
	op := &recordingOp{log: &log, name: "x"}

	h.Begin()
	h.Put(op)
	h.Cancel()
	assert.Equal(t, []string{"undo x"}, log)
	assert.True(t, op.closed)
	assert.Empty(t, h.Labels())

	stray := &recordingOp{log: &log, name: "stray"}
	h.Put(stray)
	assert.True(t, stray.closed)
}

func TestAcceptDropsRedo(t *testing.T) {
	t.Parallel()

	var log []string
	h := NewHistory()
	first := &recordingOp{log: &log, name: "1"}
	h.Begin()
	h.Put(first)
	h.Accept("first")
	_, err := h.Undo()
	require.NoError(t, err)

	h.Begin()
	h.Put(&recordingOp{log: &log, name: "2"})
	h.Accept("second")
	assert.True(t, first.closed)
	_, err = h.Redo(context.Background())
	require.ErrorIs(t, err, ErrNothingToUndo)
}
