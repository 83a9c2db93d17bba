package meta

import (
	"encoding/binary"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/meshcache/core/internal/affine"
	"github.com/meigma/meshcache/core/internal/meshtype"
)

func TestLayoutSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Size, offColor+4)
	assert.Equal(t, 152, offPosition)
	assert.Equal(t, 188, offAffine)
	assert.Equal(t, 248, offTransform)
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	tm := affine.Compose(
		meshtype.Point3{X: 1, Y: -2, Z: 3.5},
		meshtype.Point3{X: 10, Y: 20, Z: 30},
		meshtype.Point3{X: 1, Y: 2, Z: 3},
	)
	counts := meshtype.Counts{Vertices: 8, Normals: 6, UVs: 14, Faces: 12}
	md := New("Box01", tm, meshtype.RGB(0x10, 0x20, 0x30), counts)

	data := Encode(md)
	require.Len(t, data, Size)
	assert.Equal(t, "MXMT", string(data[:4]))
	assert.Equal(t, uint16(Version), binary.LittleEndian.Uint16(data[offVersion:]))
	assert.Equal(t, uint32(0x00302010), binary.LittleEndian.Uint32(data[offColor:]))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, md, got)
	assert.Equal(t, counts, got.Counts)
	assert.InDelta(t, 30, got.Rotation.Z, 1e-3)
	assert.InDelta(t, 3.5, got.Position.Z, 1e-6)
}

func TestNewIdentity(t *testing.T) {
	t.Parallel()

	md := New("Plane", meshtype.Identity(), 0, meshtype.Counts{Vertices: 4, Faces: 2})
	assert.Equal(t, meshtype.Point3{}, md.Position)
	assert.InDelta(t, 0, md.Rotation.X, 1e-6)
	assert.InDelta(t, 0, md.Rotation.Y, 1e-6)
	assert.InDelta(t, 0, md.Rotation.Z, 1e-6)
	assert.Equal(t, meshtype.Point3{X: 1, Y: 1, Z: 1}, md.Scale)
	assert.Equal(t, meshtype.Identity(), md.Transform)
}

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantLen int
	}{
		{"short", "Box01", 5},
		{"exact", strings.Repeat("a", meshtype.NameCapacity-1), meshtype.NameCapacity - 1},
		{"long ascii", strings.Repeat("a", 300), meshtype.NameCapacity - 1},
		// 3-byte runes: 42 fit in 126 bytes, the 43rd would straddle byte 127
		{"long multibyte", strings.Repeat("日", 60), 126},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TruncateName(tt.in)
			assert.Len(t, got, tt.wantLen)
			assert.True(t, utf8.ValidString(got))
			assert.True(t, strings.HasPrefix(tt.in, got))
		})
	}
}

func TestEncodeLongName(t *testing.T) {
	t.Parallel()

	md := New(strings.Repeat("x", 500), meshtype.Identity(), 0, meshtype.Counts{})
	got, err := Decode(Encode(md))
	require.NoError(t, err)
	assert.Len(t, got.Name, meshtype.NameCapacity-1)
	assert.Zero(t, Encode(md)[offName+meshtype.NameCapacity-1])
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	valid := Encode(New("ok", meshtype.Identity(), 0, meshtype.Counts{}))

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"empty", func([]byte) []byte { return nil }},
		{"short", func(b []byte) []byte { return b[:Size-1] }},
		{"long", func(b []byte) []byte { return append(b, 0) }},
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"version", func(b []byte) []byte {
			binary.LittleEndian.PutUint16(b[offVersion:], Version+1)
			return b
		}},
		{"count", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[offCounts:], 0xFFFFFFFF)
			return b
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data := tt.mutate(append([]byte(nil), valid...))
			_, err := Decode(data)
			require.ErrorIs(t, err, meshtype.ErrMalformedMetadata)
		})
	}
}
