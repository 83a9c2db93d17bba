//go:build !unix

// Package platform opens staged entry files without following links.
package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrSymlink is returned when a staged entry has been replaced by a link.
var ErrSymlink = errors.New("platform: staged entry is a symbolic link")

// OpenEntry opens name inside root for reading, refusing symbolic links.
func OpenEntry(root *os.Root, name string) (*os.File, error) {
	info, err := root.Lstat(name)
	if err != nil {
		return nil, err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymlink, name)
	}
	return root.Open(name)
}
