// Package disk implements cache.Store on the local filesystem.
package disk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/meigma/meshcache/core/cache"
	"github.com/meigma/meshcache/core/internal/checkpoint"
)

const (
	// DefaultExt is the package file extension.
	DefaultExt = "mxo"

	defaultDirPerm = 0o750
)

// Interface compliance.
var _ cache.Store = (*Store)(nil)

// Store implements cache.Store for one directory tree.
// The store is safe for concurrent use.
type Store struct {
	dir     string      // root directory for packages
	ext     string      // lower-case extension without the dot
	dirPerm os.FileMode // permissions for created directories
	purgeMu sync.Mutex  // serializes purge sweeps
}

// Option configures a disk store.
type Option func(*Store)

// WithExt sets the package file extension. A leading dot is ignored.
func WithExt(ext string) Option {
	return func(s *Store) {
		s.ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	}
}

// WithDirPerm sets the permissions used when creating the directory.
func WithDirPerm(mode os.FileMode) Option {
	return func(s *Store) {
		s.dirPerm = mode
	}
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache dir is empty")
	}
	s := &Store{
		dir:     dir,
		ext:     DefaultExt,
		dirPerm: defaultDirPerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ext == "" {
		return nil, errors.New("package extension is empty")
	}
	if err := os.MkdirAll(dir, s.dirPerm); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Ext returns the package extension without the dot.
func (s *Store) Ext() string {
	return s.ext
}

// Path returns the package path for an object.
func (s *Store) Path(object string, isCheckpoint bool, now time.Time) string {
	return filepath.Join(s.dir, checkpoint.FileName(object, s.ext, isCheckpoint, now))
}

// List returns every package under the directory, sorted by path.
func (s *Store) List() ([]cache.Package, error) {
	var out []cache.Package
	err := s.walk(s.isPackage, func(path string, info fs.FileInfo) error {
		out = append(out, s.describe(path, info))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b cache.Package) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out, nil
}

// Checkpoints returns the checkpoints of one object, oldest first.
func (s *Store) Checkpoints(object string) ([]cache.Package, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(checkpoint.FileName(object, s.ext, false, time.Time{}))
	want = strings.TrimSuffix(want, "."+s.ext)

	var out []cache.Package
	for _, p := range all {
		if p.IsCheckpoint() && p.Object == want {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b cache.Package) int {
		return a.Checkpoint.Compare(b.Checkpoint)
	})
	return out, nil
}

// Delete removes one package. Missing files are a no-op.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Purge deletes every regular file under the directory whose extension
// matches the package extension, case-insensitively, and returns how many
// packages it removed. Temp files left by interrupted writes are removed
// too but not counted; a write still in flight loses its temp file and
// fails. Other files are left alone. A missing directory purges nothing.
func (s *Store) Purge() (int, error) {
	s.purgeMu.Lock()
	defer s.purgeMu.Unlock()

	var victims []string
	err := s.walk(s.isPurgeable, func(path string, _ fs.FileInfo) error {
		victims = append(victims, path)
		return nil
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	var errs []error
	for _, path := range victims {
		if err := s.Delete(path); err != nil {
			errs = append(errs, err)
			continue
		}
		if s.isPackage(path) {
			removed++
		}
	}
	return removed, errors.Join(errs...)
}

// walk calls fn for every regular file under the directory that match accepts.
func (s *Store) walk(match func(path string) bool, fn func(path string, info fs.FileInfo) error) error {
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || !match(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return fn(path, info)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) isPackage(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == "."+s.ext
}

func (s *Store) isPurgeable(path string) bool {
	return s.isPackage(path) || checkpoint.IsTemp(filepath.Base(path), s.ext)
}

func (s *Store) describe(path string, info fs.FileInfo) cache.Package {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	object, at, _ := checkpoint.SplitFileName(base)
	return cache.Package{
		Path:       path,
		Object:     object,
		Checkpoint: at,
		Size:       info.Size(),
		ModTime:    info.ModTime(),
	}
}
