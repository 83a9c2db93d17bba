//go:build unix

// Package platform opens staged entry files without following links.
package platform

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrSymlink is returned when a staged entry has been replaced by a link.
var ErrSymlink = errors.New("platform: staged entry is a symbolic link")

// OpenEntry opens name inside root for reading. The final path element is
// never followed if it is a symbolic link.
func OpenEntry(root *os.Root, name string) (*os.File, error) {
	f, err := root.OpenFile(name, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if errors.Is(err, syscall.ELOOP) {
		return nil, fmt.Errorf("%w: %s", ErrSymlink, name)
	}
	return f, err
}
