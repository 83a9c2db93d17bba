// Package meshtype holds the types shared by the writer, reader and restore engine.
package meshtype

// Point3 is a 3-component float position or direction.
type Point3 struct {
	X, Y, Z float32
}

// UVVert is a texture coordinate. W is zero for plain UV channels.
type UVVert struct {
	U, V, W float32
}

// Face is a triangle of vertex indices.
type Face struct {
	// V holds the three vertex indices.
	V [3]uint32

	// SmGroup is the smoothing-group bitmask.
	SmGroup uint32

	// Flags carries edge visibility bits and the material id.
	Flags uint32
}

// Edge visibility bits stored in Face.Flags.
const (
	EdgeA   uint32 = 1 << 0
	EdgeB   uint32 = 1 << 1
	EdgeC   uint32 = 1 << 2
	EdgeAll        = EdgeA | EdgeB | EdgeC
)

// TVFace is a triangle of texture-vertex indices.
type TVFace struct {
	T [3]uint32
}

// NormalFace is a triangle of normal indices.
type NormalFace struct {
	N [3]uint32

	// Specified has bit i set when corner i uses an explicit normal.
	Specified uint32
}

// Matrix3 is a 4x3 affine transform in row-vector convention.
// Rows 0-2 are the basis vectors; row 3 is the translation.
type Matrix3 [4][3]float32

// Identity returns the identity transform.
func Identity() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, 0, 0}}
}

// Row returns row i as a point.
func (m Matrix3) Row(i int) Point3 {
	return Point3{m[i][0], m[i][1], m[i][2]}
}

// Color is a packed 0x00BBGGRR wire colour.
type Color uint32

// RGB packs 8-bit channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r) | uint32(g)<<8 | uint32(b)<<16)
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c >> 16) }
