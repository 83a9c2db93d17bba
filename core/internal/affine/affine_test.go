package affine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-3

func assertPoint(t *testing.T, want, got Point3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}

func TestEuler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		euler Point3
	}{
		{"identity", Point3{}},
		{"z90", Point3{Z: 90}},
		{"x45", Point3{X: 45}},
		{"y-30", Point3{Y: -30}},
		{"mixed", Point3{X: 10, Y: 20, Z: 30}},
		{"negative", Point3{X: -120, Y: 15, Z: 170}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := Compose(Point3{}, tt.euler, Point3{X: 1, Y: 1, Z: 1})
			assertPoint(t, tt.euler, Euler(m))
		})
	}
}

func TestEulerIgnoresScale(t *testing.T) {
	t.Parallel()

	rot := Point3{X: 10, Y: 20, Z: 30}
	m := Compose(Point3{X: 5}, rot, Point3{X: 2, Y: 3, Z: 0.5})
	assertPoint(t, rot, Euler(m))
}

func TestEulerGimbalLock(t *testing.T) {
	t.Parallel()

	m := Compose(Point3{}, Point3{X: 30, Y: 90}, Point3{X: 1, Y: 1, Z: 1})
	got := Euler(m)
	assert.InDelta(t, 90, got.Y, tol)
	assert.InDelta(t, 0, got.Z, tol)

	// X and Z are coupled at the pole; the folded X must reproduce the matrix.
	back := Compose(Point3{}, got, Point3{X: 1, Y: 1, Z: 1})
	for i := range 3 {
		for j := range 3 {
			assert.InDelta(t, m[i][j], back[i][j], tol, "m[%d][%d]", i, j)
		}
	}
}

func TestDecompose(t *testing.T) {
	t.Parallel()

	t.Run("identity", func(t *testing.T) {
		t.Parallel()
		p := Decompose(identity())
		assertPoint(t, Point3{}, p.T)
		assertPoint(t, Point3{X: 1, Y: 1, Z: 1}, p.K)
		assert.Equal(t, Quat{W: 1}, p.U)
		assert.InDelta(t, 1, p.Q.W, tol)
		assert.InDelta(t, 0, p.Q.X, tol)
		assert.Equal(t, float32(1), p.F)
	})

	t.Run("translation and scale", func(t *testing.T) {
		t.Parallel()
		m := Compose(Point3{X: 1, Y: 2, Z: 3}, Point3{Z: 90}, Point3{X: 2, Y: 4, Z: 8})
		p := Decompose(m)
		assertPoint(t, Point3{X: 1, Y: 2, Z: 3}, p.T)
		assertPoint(t, Point3{X: 2, Y: 4, Z: 8}, p.K)
		// 90 degrees about Z
		assert.InDelta(t, 0.7071, p.Q.W, tol)
		assert.InDelta(t, 0.7071, abs(p.Q.Z), tol)
	})

	t.Run("mirror", func(t *testing.T) {
		t.Parallel()
		m := Compose(Point3{}, Point3{}, Point3{X: -1, Y: 1, Z: 1})
		p := Decompose(m)
		assert.Equal(t, float32(-1), p.F)
		assertPoint(t, Point3{X: 1, Y: 1, Z: 1}, p.K)
	})

	t.Run("degenerate", func(t *testing.T) {
		t.Parallel()
		var m Matrix3
		p := Decompose(m)
		assertPoint(t, Point3{}, p.K)
		assertPoint(t, Point3{}, Euler(m))
	})
}

func identity() Matrix3 {
	return Compose(Point3{}, Point3{}, Point3{X: 1, Y: 1, Z: 1})
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
