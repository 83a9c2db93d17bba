package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/meshcache/core/internal/meshtype"
)

func writeArchive(t *testing.T, method meshtype.Method, level meshtype.CompressionLevel, entries map[string][]byte, order []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mxo")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := NewWriter(f, method, level)
	require.NoError(t, err)
	for _, name := range order {
		require.NoError(t, w.Add(name, bytes.NewReader(entries[name])))
	}
	require.NoError(t, w.Close())
	return path
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	entries := map[string][]byte{
		"a.bin": bytes.Repeat([]byte("abcd"), 4096),
		"b.bin": {},
		"c.bin": []byte("hello"),
	}
	order := []string{"a.bin", "b.bin", "c.bin"}

	tests := []struct {
		name   string
		method meshtype.Method
		level  meshtype.CompressionLevel
	}{
		{"deflate better", meshtype.MethodDeflate, meshtype.CompressionBetter},
		{"deflate faster", meshtype.MethodDeflate, meshtype.CompressionFaster},
		{"zstd better", meshtype.MethodZstd, meshtype.CompressionBetter},
		{"zstd faster", meshtype.MethodZstd, meshtype.CompressionFaster},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeArchive(t, tt.method, tt.level, entries, order)

			r, err := Open(path, 0)
			require.NoError(t, err)
			defer r.Close()

			for name, want := range entries {
				assert.True(t, r.Has(name))
				got, err := r.Extract(name)
				require.NoError(t, err)
				assert.Equal(t, len(want), len(got))
				assert.True(t, bytes.Equal(want, got), name)
			}

			infos := r.Entries()
			require.Len(t, infos, len(order))
			for i, info := range infos {
				assert.Equal(t, order[i], info.Name)
				assert.Equal(t, tt.method, info.Method)
			}
			assert.Less(t, infos[0].CompressedSize, infos[0].Size)
		})
	}
}

func TestExtractMissing(t *testing.T) {
	t.Parallel()

	path := writeArchive(t, meshtype.MethodDeflate, meshtype.CompressionBetter,
		map[string][]byte{"a": []byte("x")}, []string{"a"})
	r, err := Open(path, 0)
	require.NoError(t, err)
	defer r.Close()

	assert.False(t, r.Has("b"))
	_, err = r.Extract("b")
	require.ErrorIs(t, err, meshtype.ErrMissingEntry)
}

func TestExtractTooLarge(t *testing.T) {
	t.Parallel()

	path := writeArchive(t, meshtype.MethodDeflate, meshtype.CompressionFaster,
		map[string][]byte{"big": make([]byte, 1024)}, []string{"big"})
	r, err := Open(path, 512)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Extract("big")
	require.ErrorIs(t, err, ErrEntryTooLarge)
}

func TestOpenNotArchive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "junk.mxo")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))
	_, err := Open(path, 0)
	require.Error(t, err)
}

func TestNewWriterUnknownMethod(t *testing.T) {
	t.Parallel()

	_, err := NewWriter(&bytes.Buffer{}, meshtype.Method(99), meshtype.CompressionBetter)
	require.Error(t, err)
}
