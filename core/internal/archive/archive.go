// Package archive wraps the zip container that holds a package's entries.
//
// Entries are addressed by name. Deflate entries use klauspost/compress's
// flate at the requested level; zstd entries use zip method 93.
package archive

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/meigma/meshcache/core/internal/meshtype"
	"github.com/meigma/meshcache/core/internal/sizing"
)

// ErrEntryTooLarge is returned when an entry exceeds the reader's size limit.
var ErrEntryTooLarge = errors.New("archive: entry too large")

// Writer appends named entries to a zip stream.
type Writer struct {
	zw       *zip.Writer
	method   uint16
	modified time.Time
}

// NewWriter returns a Writer that compresses every entry with method at level.
func NewWriter(w io.Writer, method meshtype.Method, level meshtype.CompressionLevel) (*Writer, error) {
	zw := zip.NewWriter(w)
	aw := &Writer{zw: zw, modified: time.Now()}

	switch method {
	case meshtype.MethodDeflate:
		flateLevel := flate.BestCompression
		if level == meshtype.CompressionFaster {
			flateLevel = flate.BestSpeed
		}
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, flateLevel)
		})
		aw.method = zip.Deflate
	case meshtype.MethodZstd:
		zstdLevel := zstd.SpeedBestCompression
		if level == meshtype.CompressionFaster {
			zstdLevel = zstd.SpeedFastest
		}
		zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor(
			zstd.WithEncoderLevel(zstdLevel),
			zstd.WithEncoderConcurrency(1),
		))
		aw.method = zstd.ZipMethodWinZip
	default:
		return nil, fmt.Errorf("archive: unknown compression method %d", method)
	}
	return aw, nil
}

// Add writes an entry whose content is read from r.
func (w *Writer) Add(name string, r io.Reader) error {
	fw, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   w.method,
		Modified: w.modified,
	})
	if err != nil {
		return fmt.Errorf("archive: create %s: %w", name, err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return fmt.Errorf("archive: write %s: %w", name, err)
	}
	return nil
}

// Close writes the central directory. It does not close the underlying writer.
func (w *Writer) Close() error {
	return w.zw.Close()
}

// EntryInfo describes a stored entry.
type EntryInfo struct {
	Name           string
	Method         meshtype.Method
	Size           uint64
	CompressedSize uint64
	CRC32          uint32
}

// Reader extracts named entries from a zip archive.
type Reader struct {
	zr      *zip.Reader
	closer  io.Closer
	files   map[string]*zip.File
	maxSize uint64
}

// Open opens the archive at path. maxEntrySize caps each extracted entry;
// zero disables the cap.
func Open(path string, maxEntrySize uint64) (*Reader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return newReader(&rc.Reader, rc, maxEntrySize), nil
}

// NewReader reads an archive of size bytes from r.
func NewReader(r io.ReaderAt, size int64, maxEntrySize uint64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return newReader(zr, nil, maxEntrySize), nil
}

func newReader(zr *zip.Reader, closer io.Closer, maxEntrySize uint64) *Reader {
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor(zstd.WithDecoderConcurrency(1)))
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	return &Reader{zr: zr, closer: closer, files: files, maxSize: maxEntrySize}
}

// Has reports whether the archive contains name.
func (r *Reader) Has(name string) bool {
	_, ok := r.files[name]
	return ok
}

// Extract returns the full content of the named entry.
func (r *Reader) Extract(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", meshtype.ErrMissingEntry, name)
	}
	if r.maxSize > 0 && f.UncompressedSize64 > r.maxSize {
		return nil, fmt.Errorf("%w: %s declares %d bytes", ErrEntryTooLarge, name, f.UncompressedSize64)
	}
	src, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", name, err)
	}
	defer src.Close()

	data, err := sizing.ReadAll(src, f.UncompressedSize64, r.maxSize, ErrEntryTooLarge)
	if err != nil {
		return nil, fmt.Errorf("archive: read %s: %w", name, err)
	}
	return data, nil
}

// Entries describes every entry in archive order.
func (r *Reader) Entries() []EntryInfo {
	out := make([]EntryInfo, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		info := EntryInfo{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			CRC32:          f.CRC32,
		}
		if f.Method == zstd.ZipMethodWinZip {
			info.Method = meshtype.MethodZstd
		}
		out = append(out, info)
	}
	return out
}

// Close releases the archive file handle, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
