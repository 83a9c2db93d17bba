package objfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	meshcore "github.com/meigma/meshcache/core"
)

const quadOBJ = `# unit quad
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
s 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestReadQuad(t *testing.T) {
	t.Parallel()

	m, err := Read(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	assert.Equal(t, "Quad", m.Name)

	b := m.Buffer
	assert.Equal(t, meshcore.Counts{Vertices: 4, Normals: 1, UVs: 4, Faces: 2}, b.Counts())
	require.NoError(t, b.Validate())
	assert.Equal(t, [3]uint32{0, 1, 2}, b.Faces[0].V)
	assert.Equal(t, [3]uint32{0, 2, 3}, b.Faces[1].V)
	assert.Equal(t, [3]uint32{0, 2, 3}, b.UVFaces[1].T)
	assert.Equal(t, uint32(1), b.Faces[0].SmGroup)
	assert.Equal(t, meshcore.EdgeAll, b.Faces[0].Flags)
	assert.Equal(t, uint32(1), b.NormalFaces[0].Specified)
}

func TestReadIndexForms(t *testing.T) {
	t.Parallel()

	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1 2 3
f -3 -2 -1
f 1//1 2//1 3//1
`
	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "untitled", m.Name)
	require.Len(t, m.Buffer.Faces, 3)
	assert.Equal(t, m.Buffer.Faces[0].V, m.Buffer.Faces[1].V)
	assert.Zero(t, m.Buffer.NormalFaces[0].Specified)
	assert.Equal(t, uint32(1), m.Buffer.NormalFaces[2].Specified)
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad number", "v 1 x 3\n"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"two vertex face", "v 0 0 0\nv 1 1 1\nf 1 2\n"},
		{"bad smoothing", "s many\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Read(strings.NewReader(tt.src))
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestWriteRead(t *testing.T) {
	t.Parallel()

	m, err := Read(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))

	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestWriteNil(t *testing.T) {
	t.Parallel()

	require.Error(t, Write(&bytes.Buffer{}, nil))
	require.Error(t, Write(&bytes.Buffer{}, &Mesh{Name: "x"}))
}
