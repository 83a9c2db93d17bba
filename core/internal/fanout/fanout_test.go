package fanout

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEachCoversRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		n     int
		chunk int
	}{
		{"empty", 0, 4},
		{"single chunk", 3, 4},
		{"exact", 16, 4},
		{"ragged", 17, 4},
		{"default chunk", DefaultChunk*2 + 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			seen := make([]int32, tt.n)
			var tasks atomic.Int32
			g := New(context.Background(), 3, tt.chunk)
			g.Each(tt.n, func(lo, hi int) {
				tasks.Add(1)
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&seen[i], 1)
				}
			})
			require.NoError(t, g.Wait())
			for i, v := range seen {
				require.EqualValues(t, 1, v, "index %d", i)
			}
			chunk := tt.chunk
			if chunk <= 0 {
				chunk = DefaultChunk
			}
			assert.EqualValues(t, (tt.n+chunk-1)/chunk, tasks.Load())
		})
	}
}

func TestWorkerLimit(t *testing.T) {
	t.Parallel()

	const workers = 2
	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	g := New(context.Background(), workers, 1)
	g.Each(64, func(int, int) {
		mu.Lock()
		running++
		peak = max(peak, running)
		mu.Unlock()

		mu.Lock()
		running--
		mu.Unlock()
	})
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, peak, workers)
}

func TestCopy(t *testing.T) {
	t.Parallel()

	src := make([]int, 1000)
	for i := range src {
		src[i] = i * 3
	}
	dst := make([]int, len(src))

	g := New(context.Background(), 4, 7)
	Copy(g, dst, src)
	require.NoError(t, g.Wait())
	assert.Equal(t, src, dst)
}

func TestCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	g := New(ctx, 2, 1)
	g.Each(10, func(int, int) { ran.Add(1) })
	require.ErrorIs(t, g.Wait(), context.Canceled)
	assert.Zero(t, ran.Load())
}
