// Package affine decomposes 4x3 transforms into translation, rotation and scale.
package affine

import (
	"math"

	"github.com/meigma/meshcache/core/internal/meshtype"
)

type (
	Matrix3 = meshtype.Matrix3
	Point3  = meshtype.Point3
	Quat    = meshtype.Quat
	Parts   = meshtype.AffineParts
)

const epsilon = 1e-6

// Decompose splits m into translation, rotation, scale and determinant sign.
//
// Shear is not separated out, so the stretch rotation U is always identity.
// A degenerate basis row yields a zero scale on that axis and an identity
// rotation row in its place.
func Decompose(m Matrix3) Parts {
	r := rotationRows(m)
	k := Point3{X: length(m.Row(0)), Y: length(m.Row(1)), Z: length(m.Row(2))}
	f := float32(1)
	if det(m) < 0 {
		f = -1
	}
	return Parts{
		T: m.Row(3),
		Q: quatFromRows(r),
		U: Quat{W: 1},
		K: k,
		F: f,
	}
}

// Euler returns the XYZ Euler angles of m's rotation in degrees.
func Euler(m Matrix3) Point3 {
	r := rotationRows(m)
	sy := -float64(r[0][2])
	sy = math.Max(-1, math.Min(1, sy))
	y := math.Asin(sy)

	var x, z float64
	if math.Abs(math.Cos(y)) > epsilon {
		x = math.Atan2(float64(r[1][2]), float64(r[2][2]))
		z = math.Atan2(float64(r[0][1]), float64(r[0][0]))
	} else {
		// gimbal lock: fold Z into X
		x = math.Atan2(float64(r[1][0])*sy, float64(r[1][1]))
	}
	return Point3{X: degrees(x), Y: degrees(y), Z: degrees(z)}
}

// Compose builds a transform from a translation, XYZ Euler degrees and scale.
func Compose(pos, eulerDeg, scale Point3) Matrix3 {
	a := radians(eulerDeg.X)
	b := radians(eulerDeg.Y)
	c := radians(eulerDeg.Z)
	sa, ca := math.Sincos(a)
	sb, cb := math.Sincos(b)
	sc, cc := math.Sincos(c)

	rows := [3][3]float64{
		{cb * cc, cb * sc, -sb},
		{sa*sb*cc - ca*sc, sa*sb*sc + ca*cc, sa * cb},
		{ca*sb*cc + sa*sc, ca*sb*sc - sa*cc, ca * cb},
	}
	s := [3]float32{scale.X, scale.Y, scale.Z}

	var m Matrix3
	for i := range 3 {
		for j := range 3 {
			m[i][j] = float32(rows[i][j]) * s[i]
		}
	}
	m[3] = [3]float32{pos.X, pos.Y, pos.Z}
	return m
}

// rotationRows normalizes the basis rows and removes a mirror.
func rotationRows(m Matrix3) [3][3]float32 {
	sign := float32(1)
	if det(m) < 0 {
		sign = -1
	}
	identity := meshtype.Identity()
	var r [3][3]float32
	for i := range 3 {
		row := m.Row(i)
		l := length(row)
		if l < epsilon {
			r[i] = identity[i]
			continue
		}
		r[i] = [3]float32{sign * row.X / l, sign * row.Y / l, sign * row.Z / l}
	}
	return r
}

// quatFromRows converts a row-vector rotation matrix to a quaternion.
func quatFromRows(r [3][3]float32) Quat {
	trace := float64(r[0][0] + r[1][1] + r[2][2])
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q.W = float32(0.25 / s)
		q.X = float32(float64(r[1][2]-r[2][1]) * s)
		q.Y = float32(float64(r[2][0]-r[0][2]) * s)
		q.Z = float32(float64(r[0][1]-r[1][0]) * s)
	case r[0][0] > r[1][1] && r[0][0] > r[2][2]:
		s := 2 * math.Sqrt(1+float64(r[0][0]-r[1][1]-r[2][2]))
		q.W = float32(float64(r[1][2]-r[2][1]) / s)
		q.X = float32(0.25 * s)
		q.Y = float32(float64(r[1][0]+r[0][1]) / s)
		q.Z = float32(float64(r[2][0]+r[0][2]) / s)
	case r[1][1] > r[2][2]:
		s := 2 * math.Sqrt(1+float64(r[1][1]-r[0][0]-r[2][2]))
		q.W = float32(float64(r[2][0]-r[0][2]) / s)
		q.X = float32(float64(r[1][0]+r[0][1]) / s)
		q.Y = float32(0.25 * s)
		q.Z = float32(float64(r[2][1]+r[1][2]) / s)
	default:
		s := 2 * math.Sqrt(1+float64(r[2][2]-r[0][0]-r[1][1]))
		q.W = float32(float64(r[0][1]-r[1][0]) / s)
		q.X = float32(float64(r[2][0]+r[0][2]) / s)
		q.Y = float32(float64(r[2][1]+r[1][2]) / s)
		q.Z = float32(0.25 * s)
	}
	return q
}

func det(m Matrix3) float32 {
	a, b, c := m.Row(0), m.Row(1), m.Row(2)
	return a.X*(b.Y*c.Z-b.Z*c.Y) - a.Y*(b.X*c.Z-b.Z*c.X) + a.Z*(b.X*c.Y-b.Y*c.X)
}

func length(p Point3) float32 {
	return float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y + p.Z*p.Z)))
}

func degrees(rad float64) float32 {
	return float32(rad * 180 / math.Pi)
}

func radians(deg float32) float64 {
	return float64(deg) * math.Pi / 180
}
