package disk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("pkg"), 0o600))
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "a", "b")
		s, err := New(dir)
		require.NoError(t, err)
		assert.DirExists(t, dir)
		assert.Equal(t, DefaultExt, s.Ext())
	})

	t.Run("empty dir", func(t *testing.T) {
		t.Parallel()
		_, err := New("")
		require.Error(t, err)
	})

	t.Run("extension normalized", func(t *testing.T) {
		t.Parallel()
		s, err := New(t.TempDir(), WithExt(".MXO"))
		require.NoError(t, err)
		assert.Equal(t, "mxo", s.Ext())
	})

	t.Run("empty extension", func(t *testing.T) {
		t.Parallel()
		_, err := New(t.TempDir(), WithExt("."))
		require.Error(t, err)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "box01.mxo"), s.Path("Box01", false, time.Time{}))

	at := time.Date(2024, 3, 1, 12, 30, 45, 123e6, time.Local)
	assert.Equal(t, filepath.Join(dir, "box01-2024-03-01-12-30-45.123.mxo"), s.Path("Box01", true, at))
}

func TestPurge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	packages := []string{
		filepath.Join(dir, "box01.mxo"),
		filepath.Join(dir, "sphere-2024-03-01-12-30-45.123.MXO"),
		filepath.Join(dir, "nested", "deeper", "teapot.Mxo"),
	}
	others := []string{
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "nested", "box01.mxo.bak"),
	}
	for _, p := range append(append([]string{}, packages...), others...) {
		touch(t, p)
	}

	n, err := s.Purge()
	require.NoError(t, err)
	assert.Equal(t, len(packages), n)

	for _, p := range packages {
		assert.NoFileExists(t, p)
	}
	for _, p := range others {
		assert.FileExists(t, p)
	}

	n, err = s.Purge()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPurgeSweepsInterruptedWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	pkg := filepath.Join(dir, "box01.mxo")
	leftovers := []string{
		filepath.Join(dir, ".box01.mxo-123456.tmp"),
		filepath.Join(dir, "nested", ".teapot.MXO-987.tmp"),
	}
	others := []string{
		filepath.Join(dir, ".notes.txt-1.tmp"),
		filepath.Join(dir, "box01.mxo-1.tmp"),
	}
	touch(t, pkg)
	for _, p := range append(append([]string{}, leftovers...), others...) {
		touch(t, p)
	}

	listed, err := s.List()
	require.NoError(t, err)
	require.Len(t, listed, 1)

	n, err := s.Purge()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "leftover temp files are not counted as packages")
	assert.NoFileExists(t, pkg)
	for _, p := range leftovers {
		assert.NoFileExists(t, p)
	}
	for _, p := range others {
		assert.FileExists(t, p)
	}
}

func TestPurgeMissingDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(dir))

	n, err := s.Purge()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListAndCheckpoints(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	early := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	late := early.Add(1500 * time.Millisecond)

	touch(t, s.Path("Box01", false, time.Time{}))
	touch(t, s.Path("Box01", true, late))
	touch(t, s.Path("Box01", true, early))
	touch(t, s.Path("Sphere", true, early))
	touch(t, filepath.Join(dir, "readme.md"))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Path, all[i].Path)
	}
	assert.Equal(t, "box01", all[0].Object)
	assert.False(t, all[0].IsCheckpoint())
	assert.EqualValues(t, 3, all[0].Size)

	cps, err := s.Checkpoints("Box01")
	require.NoError(t, err)
	require.Len(t, cps, 2)
	assert.True(t, cps[0].Checkpoint.Equal(early))
	assert.True(t, cps[1].Checkpoint.Equal(late))

	cps, err = s.Checkpoints("missing")
	require.NoError(t, err)
	assert.Empty(t, cps)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	p := s.Path("box", false, time.Time{})
	touch(t, p)
	require.NoError(t, s.Delete(p))
	assert.NoFileExists(t, p)
	require.NoError(t, s.Delete(p))
}
