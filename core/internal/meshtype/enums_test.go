package meshtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Strategy
	}{
		{"single", StrategySequential},
		{"sequential", StrategySequential},
		{"multi", StrategyParallel},
		{"Parallel", StrategyParallel},
		{" multi ", StrategyParallel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseStrategy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStrategy("threads")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	for _, b := range []Buffering{BufferingMemory, BufferingDisk} {
		text, err := b.MarshalText()
		require.NoError(t, err)
		var got Buffering
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, b, got)
	}
	for _, c := range []CompressionLevel{CompressionBetter, CompressionFaster} {
		text, err := c.MarshalText()
		require.NoError(t, err)
		var got CompressionLevel
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, c, got)
	}
	for _, m := range []Method{MethodDeflate, MethodZstd} {
		text, err := m.MarshalText()
		require.NoError(t, err)
		var got Method
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, m, got)
	}

	var b Buffering
	require.ErrorIs(t, b.UnmarshalText([]byte("tape")), ErrInvalidArgument)
	var c CompressionLevel
	require.ErrorIs(t, c.UnmarshalText([]byte("best")), ErrInvalidArgument)
	var m Method
	require.ErrorIs(t, m.UnmarshalText([]byte("lzma")), ErrInvalidArgument)
}

func TestNewGeometry(t *testing.T) {
	t.Parallel()

	b, err := NewGeometry(Counts{Vertices: 4, Normals: 1, UVs: 4, Faces: 2}, 0)
	require.NoError(t, err)
	assert.Len(t, b.Vertices, 4)
	assert.Len(t, b.NormalFaces, 2)
	require.NoError(t, b.Match(Counts{Vertices: 4, Normals: 1, UVs: 4, Faces: 2}))

	_, err = NewGeometry(Counts{Vertices: 10}, 5)
	require.ErrorIs(t, err, ErrAllocationFailed)

	_, err = NewGeometry(Counts{Vertices: -1}, 0)
	require.ErrorIs(t, err, ErrAllocationFailed)
}

func TestColor(t *testing.T) {
	t.Parallel()

	c := RGB(0x11, 0x22, 0x33)
	assert.Equal(t, Color(0x00332211), c)
	assert.Equal(t, uint8(0x11), c.R())
	assert.Equal(t, uint8(0x22), c.G())
	assert.Equal(t, uint8(0x33), c.B())
}
