// Package layout defines the package entry set and the byte layout of each
// buffer element.
//
// Every element is a run of little-endian 32-bit words, so a buffer entry is
// valid exactly when its length is a multiple of the element size.
package layout

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/meigma/meshcache/core/internal/meshtype"
)

// Entry names inside a package. The set and spelling are part of the format.
const (
	EntryMeta        = "mesh.mta"
	EntryVertices    = "mesh.vtx"
	EntryNormals     = "mesh.nrm"
	EntryUVs         = "mesh.tex"
	EntryFaces       = "mesh.idx"
	EntryUVFaces     = "mesh.tdx"
	EntryNormalFaces = "mesh.ndx"
)

// Serialized element sizes in bytes.
const (
	PointSize      = 12
	UVVertSize     = 12
	FaceSize       = 20
	TVFaceSize     = 12
	NormalFaceSize = 16
)

// MaxCount is the largest element count a record can declare.
const MaxCount = math.MaxInt32

// BufferEntries lists the six buffer entries in archive order.
var BufferEntries = []string{
	EntryVertices,
	EntryNormals,
	EntryUVs,
	EntryFaces,
	EntryUVFaces,
	EntryNormalFaces,
}

// Entries lists all seven entries in archive order.
var Entries = append(append([]string(nil), BufferEntries...), EntryMeta)

// Blob is one serialized entry.
type Blob struct {
	Name string
	Data []byte
}

type codec[T any] struct {
	size int
	put  func(b []byte, v T)
	get  func(b []byte) T
}

var le = binary.LittleEndian

func putF(b []byte, v float32) { le.PutUint32(b, math.Float32bits(v)) }
func getF(b []byte) float32    { return math.Float32frombits(le.Uint32(b)) }

var pointCodec = codec[meshtype.Point3]{
	size: PointSize,
	put: func(b []byte, p meshtype.Point3) {
		putF(b[0:], p.X)
		putF(b[4:], p.Y)
		putF(b[8:], p.Z)
	},
	get: func(b []byte) meshtype.Point3 {
		return meshtype.Point3{X: getF(b[0:]), Y: getF(b[4:]), Z: getF(b[8:])}
	},
}

var uvCodec = codec[meshtype.UVVert]{
	size: UVVertSize,
	put: func(b []byte, p meshtype.UVVert) {
		putF(b[0:], p.U)
		putF(b[4:], p.V)
		putF(b[8:], p.W)
	},
	get: func(b []byte) meshtype.UVVert {
		return meshtype.UVVert{U: getF(b[0:]), V: getF(b[4:]), W: getF(b[8:])}
	},
}

var faceCodec = codec[meshtype.Face]{
	size: FaceSize,
	put: func(b []byte, f meshtype.Face) {
		putIndices(b, f.V)
		le.PutUint32(b[12:], f.SmGroup)
		le.PutUint32(b[16:], f.Flags)
	},
	get: func(b []byte) meshtype.Face {
		return meshtype.Face{V: getIndices(b), SmGroup: le.Uint32(b[12:]), Flags: le.Uint32(b[16:])}
	},
}

var tvFaceCodec = codec[meshtype.TVFace]{
	size: TVFaceSize,
	put:  func(b []byte, f meshtype.TVFace) { putIndices(b, f.T) },
	get:  func(b []byte) meshtype.TVFace { return meshtype.TVFace{T: getIndices(b)} },
}

var normalFaceCodec = codec[meshtype.NormalFace]{
	size: NormalFaceSize,
	put: func(b []byte, f meshtype.NormalFace) {
		putIndices(b, f.N)
		le.PutUint32(b[12:], f.Specified)
	},
	get: func(b []byte) meshtype.NormalFace {
		return meshtype.NormalFace{N: getIndices(b), Specified: le.Uint32(b[12:])}
	},
}

func putIndices(b []byte, idx [3]uint32) {
	le.PutUint32(b[0:], idx[0])
	le.PutUint32(b[4:], idx[1])
	le.PutUint32(b[8:], idx[2])
}

func getIndices(b []byte) [3]uint32 {
	return [3]uint32{le.Uint32(b[0:]), le.Uint32(b[4:]), le.Uint32(b[8:])}
}

func encode[T any](c codec[T], src []T) []byte {
	out := make([]byte, len(src)*c.size)
	for i, v := range src {
		c.put(out[i*c.size:], v)
	}
	return out
}

func decode[T any](c codec[T], name string, data []byte, want int) ([]T, error) {
	if len(data)%c.size != 0 {
		return nil, fmt.Errorf("%w: %s is %d bytes, not a multiple of %d", meshtype.ErrSizeMismatch, name, len(data), c.size)
	}
	if n := len(data) / c.size; n != want {
		return nil, fmt.Errorf("%w: %s holds %d elements, metadata declares %d", meshtype.ErrSizeMismatch, name, n, want)
	}
	out := make([]T, want)
	for i := range out {
		out[i] = c.get(data[i*c.size:])
	}
	return out, nil
}

// CheckCounts reports whether every count fits the record.
func CheckCounts(c meshtype.Counts) error {
	for _, n := range []int{c.Vertices, c.Normals, c.UVs, c.Faces} {
		if n < 0 || n > MaxCount {
			return fmt.Errorf("%w: count %d out of range", meshtype.ErrSizeMismatch, n)
		}
	}
	return nil
}

// EncodeBuffers serializes the six arrays in BufferEntries order.
func EncodeBuffers(b *meshtype.BufferSet) []Blob {
	return []Blob{
		{Name: EntryVertices, Data: encode(pointCodec, b.Vertices)},
		{Name: EntryNormals, Data: encode(pointCodec, b.Normals)},
		{Name: EntryUVs, Data: encode(uvCodec, b.UVs)},
		{Name: EntryFaces, Data: encode(faceCodec, b.Faces)},
		{Name: EntryUVFaces, Data: encode(tvFaceCodec, b.UVFaces)},
		{Name: EntryNormalFaces, Data: encode(normalFaceCodec, b.NormalFaces)},
	}
}

// DecodeBuffers parses the six buffer entries against the declared counts.
// Entries may be supplied in any order; all six must be present.
func DecodeBuffers(entries map[string][]byte, counts meshtype.Counts) (*meshtype.BufferSet, error) {
	for _, name := range BufferEntries {
		if _, ok := entries[name]; !ok {
			return nil, fmt.Errorf("%w: %s", meshtype.ErrMissingEntry, name)
		}
	}

	var (
		b   meshtype.BufferSet
		err error
	)
	if b.Vertices, err = decode(pointCodec, EntryVertices, entries[EntryVertices], counts.Vertices); err != nil {
		return nil, err
	}
	if b.Normals, err = decode(pointCodec, EntryNormals, entries[EntryNormals], counts.Normals); err != nil {
		return nil, err
	}
	if b.UVs, err = decode(uvCodec, EntryUVs, entries[EntryUVs], counts.UVs); err != nil {
		return nil, err
	}
	if b.Faces, err = decode(faceCodec, EntryFaces, entries[EntryFaces], counts.Faces); err != nil {
		return nil, err
	}
	if b.UVFaces, err = decode(tvFaceCodec, EntryUVFaces, entries[EntryUVFaces], counts.Faces); err != nil {
		return nil, err
	}
	if b.NormalFaces, err = decode(normalFaceCodec, EntryNormalFaces, entries[EntryNormalFaces], counts.Faces); err != nil {
		return nil, err
	}
	return &b, nil
}
