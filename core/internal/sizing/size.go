// Package sizing bounds reads of entries whose declared size is untrusted.
package sizing

import (
	"bytes"
	"io"
	"math"
)

// maxPrealloc bounds the up-front allocation taken from an untrusted hint.
const maxPrealloc = 64 << 20

// ReadAll reads r to EOF into a buffer presized to hint bytes.
// Returns overflowErr if more than maxSize bytes are available; maxSize 0 disables the cap.
func ReadAll(r io.Reader, hint, maxSize uint64, overflowErr error) ([]byte, error) {
	if maxSize > 0 && hint > maxSize {
		return nil, overflowErr
	}
	var buf bytes.Buffer
	buf.Grow(int(min(hint, maxPrealloc))) //nolint:gosec // bounded by maxPrealloc

	src := r
	if maxSize > 0 && maxSize < math.MaxInt64 {
		src = &io.LimitedReader{R: r, N: int64(maxSize) + 1} //nolint:gosec // checked above
	}
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, err
	}
	if maxSize > 0 && uint64(buf.Len()) > maxSize {
		return nil, overflowErr
	}
	return buf.Bytes(), nil
}
