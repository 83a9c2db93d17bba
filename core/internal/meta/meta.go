// Package meta encodes the fixed-size metadata record stored as mesh.mta.
//
// The record is written field by field in little-endian order behind a magic
// and a format version, so a reader never reinterprets bytes written with a
// different layout.
package meta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/meigma/meshcache/core/internal/affine"
	"github.com/meigma/meshcache/core/internal/meshtype"
)

// Version is the only record layout this package reads and writes.
const Version = 1

// Size is the encoded length of a record.
const Size = 300

var magic = [4]byte{'M', 'X', 'M', 'T'}

// Field offsets.
const (
	offVersion   = 4
	offFlags     = 6
	offCounts    = 8
	offName      = 24
	offPosition  = offName + meshtype.NameCapacity
	offAffine    = offPosition + 9*4
	offTransform = offAffine + 15*4
	offColor     = offTransform + 12*4
)

// New builds a record for an object, deriving the decomposed transform
// components from tm.
func New(name string, tm meshtype.Matrix3, color meshtype.Color, counts meshtype.Counts) meshtype.Metadata {
	parts := affine.Decompose(tm)
	return meshtype.Metadata{
		Counts:    counts,
		Name:      TruncateName(name),
		Position:  parts.T,
		Rotation:  affine.Euler(tm),
		Scale:     parts.K,
		Affine:    parts,
		Transform: tm,
		WireColor: color,
	}
}

// TruncateName shortens name to fit the record, keeping whole runes.
func TruncateName(name string) string {
	limit := meshtype.NameCapacity - 1
	if len(name) <= limit {
		return name
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// Encode serializes md into a Size-byte record.
func Encode(md meshtype.Metadata) []byte {
	buf := make([]byte, Size)
	le := binary.LittleEndian

	copy(buf, magic[:])
	le.PutUint16(buf[offVersion:], Version)
	le.PutUint16(buf[offFlags:], md.Flags)

	c := md.Counts
	for i, n := range []int{c.Vertices, c.Normals, c.UVs, c.Faces} {
		le.PutUint32(buf[offCounts+4*i:], uint32(n)) //nolint:gosec // counts come from slice lengths
	}

	copy(buf[offName:offName+meshtype.NameCapacity-1], TruncateName(md.Name))

	putFloats(buf[offPosition:], point(md.Position), point(md.Rotation), point(md.Scale))

	a := md.Affine
	putFloats(buf[offAffine:],
		point(a.T),
		[]float32{a.Q.X, a.Q.Y, a.Q.Z, a.Q.W},
		[]float32{a.U.X, a.U.Y, a.U.Z, a.U.W},
		point(a.K),
		[]float32{a.F},
	)

	tm := md.Transform
	putFloats(buf[offTransform:], tm[0][:], tm[1][:], tm[2][:], tm[3][:])

	le.PutUint32(buf[offColor:], uint32(md.WireColor))
	return buf
}

// Decode parses a record produced by Encode.
func Decode(data []byte) (meshtype.Metadata, error) {
	if len(data) != Size {
		return meshtype.Metadata{}, fmt.Errorf("%w: record is %d bytes, want %d", meshtype.ErrMalformedMetadata, len(data), Size)
	}
	if !bytes.Equal(data[:len(magic)], magic[:]) {
		return meshtype.Metadata{}, fmt.Errorf("%w: bad magic %q", meshtype.ErrMalformedMetadata, data[:len(magic)])
	}
	le := binary.LittleEndian
	if v := le.Uint16(data[offVersion:]); v != Version {
		return meshtype.Metadata{}, fmt.Errorf("%w: unsupported version %d", meshtype.ErrMalformedMetadata, v)
	}

	var counts [4]int
	for i := range counts {
		n := le.Uint32(data[offCounts+4*i:])
		if uint64(n) > math.MaxInt32 {
			return meshtype.Metadata{}, fmt.Errorf("%w: count %d out of range", meshtype.ErrMalformedMetadata, n)
		}
		counts[i] = int(n)
	}

	name := data[offName : offName+meshtype.NameCapacity]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	f := floats(data[offPosition:], 9)
	a := floats(data[offAffine:], 15)
	t := floats(data[offTransform:], 12)

	md := meshtype.Metadata{
		Counts: meshtype.Counts{
			Vertices: counts[0],
			Normals:  counts[1],
			UVs:      counts[2],
			Faces:    counts[3],
		},
		Name:     string(name),
		Flags:    le.Uint16(data[offFlags:]),
		Position: meshtype.Point3{X: f[0], Y: f[1], Z: f[2]},
		Rotation: meshtype.Point3{X: f[3], Y: f[4], Z: f[5]},
		Scale:    meshtype.Point3{X: f[6], Y: f[7], Z: f[8]},
		Affine: meshtype.AffineParts{
			T: meshtype.Point3{X: a[0], Y: a[1], Z: a[2]},
			Q: meshtype.Quat{X: a[3], Y: a[4], Z: a[5], W: a[6]},
			U: meshtype.Quat{X: a[7], Y: a[8], Z: a[9], W: a[10]},
			K: meshtype.Point3{X: a[11], Y: a[12], Z: a[13]},
			F: a[14],
		},
		WireColor: meshtype.Color(le.Uint32(data[offColor:])),
	}
	for r := range 4 {
		copy(md.Transform[r][:], t[3*r:3*r+3])
	}
	return md, nil
}

func point(p meshtype.Point3) []float32 {
	return []float32{p.X, p.Y, p.Z}
}

func putFloats(buf []byte, groups ...[]float32) {
	off := 0
	for _, g := range groups {
		for _, v := range g {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
}

func floats(buf []byte, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return out
}
