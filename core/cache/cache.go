package cache

import "time"

// Package describes one package file found in a store.
type Package struct {
	// Path is the package file path.
	Path string

	// Object is the lower-cased object name recovered from the file name.
	Object string

	// Checkpoint is the instant encoded in a checkpoint file name.
	// It is zero for plain caches.
	Checkpoint time.Time

	// Size is the file size in bytes.
	Size int64

	// ModTime is the file modification time.
	ModTime time.Time
}

// IsCheckpoint reports whether the package is a timestamped snapshot.
func (p Package) IsCheckpoint() bool {
	return !p.Checkpoint.IsZero()
}

// Store locates and manages packages in a cache directory.
//
// Implementations must be safe for concurrent use. They do not coordinate
// concurrent writers of the same package path.
type Store interface {
	// Dir returns the cache directory.
	Dir() string

	// Path returns the package path for an object. Checkpoint paths embed now.
	Path(object string, checkpoint bool, now time.Time) string

	// List returns every package under the directory, sorted by path.
	List() ([]Package, error)

	// Checkpoints returns the checkpoints of one object, oldest first.
	Checkpoints(object string) ([]Package, error)

	// Delete removes one package. Missing files are a no-op.
	Delete(path string) error

	// Purge deletes every package under the directory and returns the count.
	Purge() (int, error)
}
