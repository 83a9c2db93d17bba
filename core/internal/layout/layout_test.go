package layout

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/meshcache/core/internal/meshtype"
)

func sample() *meshtype.BufferSet {
	return &meshtype.BufferSet{
		Vertices: []meshtype.Point3{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0.5, Z: 0}},
		Normals:  []meshtype.Point3{{Z: 1}},
		UVs:      []meshtype.UVVert{{U: 0.25, V: 0.75}},
		Faces:    []meshtype.Face{{V: [3]uint32{0, 1, 0}, SmGroup: 4, Flags: meshtype.EdgeAll}},
		UVFaces:  []meshtype.TVFace{{T: [3]uint32{0, 0, 0}}},
		NormalFaces: []meshtype.NormalFace{
			{N: [3]uint32{0, 0, 0}, Specified: 1},
		},
	}
}

func toMap(blobs []Blob) map[string][]byte {
	m := make(map[string][]byte, len(blobs))
	for _, b := range blobs {
		m[b.Name] = b.Data
	}
	return m
}

func TestEntries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"mesh.vtx", "mesh.nrm", "mesh.tex", "mesh.idx", "mesh.tdx", "mesh.ndx", "mesh.mta",
	}, Entries)
	assert.Len(t, BufferEntries, 6)
}

func TestEncodeBuffers(t *testing.T) {
	t.Parallel()

	b := sample()
	blobs := EncodeBuffers(b)
	require.Len(t, blobs, len(BufferEntries))
	for i, blob := range blobs {
		assert.Equal(t, BufferEntries[i], blob.Name)
	}

	m := toMap(blobs)
	assert.Len(t, m[EntryVertices], 2*PointSize)
	assert.Len(t, m[EntryNormals], PointSize)
	assert.Len(t, m[EntryUVs], UVVertSize)
	assert.Len(t, m[EntryFaces], FaceSize)
	assert.Len(t, m[EntryUVFaces], TVFaceSize)
	assert.Len(t, m[EntryNormalFaces], NormalFaceSize)

	le := binary.LittleEndian
	assert.Equal(t, float32(2), math.Float32frombits(le.Uint32(m[EntryVertices][4:])))
	face := m[EntryFaces]
	assert.Equal(t, uint32(1), le.Uint32(face[4:]))
	assert.Equal(t, uint32(4), le.Uint32(face[12:]))
	assert.Equal(t, meshtype.EdgeAll, le.Uint32(face[16:]))
}

func TestDecodeBuffers(t *testing.T) {
	t.Parallel()

	b := sample()
	got, err := DecodeBuffers(toMap(EncodeBuffers(b)), b.Counts())
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestDecodeBuffersEmpty(t *testing.T) {
	t.Parallel()

	b := &meshtype.BufferSet{}
	got, err := DecodeBuffers(toMap(EncodeBuffers(b)), meshtype.Counts{})
	require.NoError(t, err)
	assert.Empty(t, got.Vertices)
	assert.Empty(t, got.Faces)
}

func TestDecodeBuffersErrors(t *testing.T) {
	t.Parallel()

	counts := sample().Counts()

	tests := []struct {
		name    string
		mutate  func(map[string][]byte)
		counts  meshtype.Counts
		wantErr error
	}{
		{
			name:    "missing entry",
			mutate:  func(m map[string][]byte) { delete(m, EntryNormalFaces) },
			counts:  counts,
			wantErr: meshtype.ErrMissingEntry,
		},
		{
			name:    "not a multiple",
			mutate:  func(m map[string][]byte) { m[EntryVertices] = m[EntryVertices][:PointSize+1] },
			counts:  counts,
			wantErr: meshtype.ErrSizeMismatch,
		},
		{
			name:    "count disagrees",
			mutate:  func(map[string][]byte) {},
			counts:  meshtype.Counts{Vertices: 3, Normals: 1, UVs: 1, Faces: 1},
			wantErr: meshtype.ErrSizeMismatch,
		},
		{
			name:    "face arrays disagree",
			mutate:  func(m map[string][]byte) { m[EntryUVFaces] = append(m[EntryUVFaces], make([]byte, TVFaceSize)...) },
			counts:  counts,
			wantErr: meshtype.ErrSizeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := toMap(EncodeBuffers(sample()))
			tt.mutate(m)
			_, err := DecodeBuffers(m, tt.counts)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckCounts(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckCounts(meshtype.Counts{Vertices: 1, Faces: MaxCount}))
	require.ErrorIs(t, CheckCounts(meshtype.Counts{Vertices: -1}), meshtype.ErrSizeMismatch)
	require.ErrorIs(t, CheckCounts(meshtype.Counts{Normals: MaxCount + 1}), meshtype.ErrSizeMismatch)
}
