// Package stage holds serialized entries between encoding and archiving.
//
// Memory staging keeps each entry's bytes and streams them straight into the
// archive. Disk staging writes each entry to a file in a private directory
// and streams it back through the same root, trading latency for a smaller
// working set. Both hand the archive the same bytes.
package stage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/meigma/meshcache/core/internal/archive"
	"github.com/meigma/meshcache/core/internal/meshtype"
	"github.com/meigma/meshcache/core/internal/platform"
)

const (
	dirPrefix = "meshcache-"
	dirPerm   = 0o700
	filePerm  = 0o600
)

// Stager holds entries until they are added to an archive.
// Close must be called on every path; it releases all staged data.
type Stager interface {
	// Put stages data under name, replacing any previous entry.
	Put(name string, data []byte) error

	// AddTo appends the staged entry to w.
	AddTo(w *archive.Writer, name string) error

	// Close releases staged data.
	Close() error
}

// New returns a stager for mode. tempRoot is the parent of the disk staging
// directory; empty means os.TempDir().
func New(mode meshtype.Buffering, tempRoot string) (Stager, error) {
	switch mode {
	case meshtype.BufferingMemory:
		return &memory{entries: make(map[string][]byte)}, nil
	case meshtype.BufferingDisk:
		return newDisk(tempRoot)
	default:
		return nil, fmt.Errorf("stage: unknown buffering mode %d", mode)
	}
}

type memory struct {
	entries map[string][]byte
}

func (m *memory) Put(name string, data []byte) error {
	m.entries[name] = data
	return nil
}

func (m *memory) AddTo(w *archive.Writer, name string) error {
	data, ok := m.entries[name]
	if !ok {
		return fmt.Errorf("stage: %s not staged", name)
	}
	return w.Add(name, bytes.NewReader(data))
}

func (m *memory) Close() error {
	clear(m.entries)
	return nil
}

type disk struct {
	dir  string
	root *os.Root
}

func newDisk(tempRoot string) (*disk, error) {
	if tempRoot == "" {
		tempRoot = os.TempDir()
	}
	dir := filepath.Join(tempRoot, dirPrefix+uuid.NewString())
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("stage: create %s: %w", dir, err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("stage: open %s: %w", dir, err)
	}
	return &disk{dir: dir, root: root}, nil
}

// Dir returns the staging directory.
func (d *disk) Dir() string {
	return d.dir
}

func (d *disk) Put(name string, data []byte) error {
	f, err := d.root.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("stage: create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("stage: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("stage: close %s: %w", name, err)
	}
	return nil
}

func (d *disk) AddTo(w *archive.Writer, name string) error {
	f, err := platform.OpenEntry(d.root, name)
	if err != nil {
		return fmt.Errorf("stage: open %s: %w", name, err)
	}
	defer f.Close()
	return w.Add(name, f)
}

func (d *disk) Close() error {
	return errors.Join(d.root.Close(), os.RemoveAll(d.dir))
}
