package meshcache

import (
	_ "crypto/sha256" // registers digest.SHA256
	"fmt"
	"os"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/meshcache/core/internal/archive"
)

// EntryInfo describes one archive entry.
type EntryInfo struct {
	Name           string
	Method         Method
	Size           uint64
	CompressedSize uint64
	CRC32          uint32
}

// PackageInfo summarizes a package without decoding its buffers.
type PackageInfo struct {
	Path     string
	Size     int64
	Digest   digest.Digest
	Metadata Metadata
	Entries  []EntryInfo
}

// Inspect reads the package header, metadata and content digest at path.
func Inspect(path string, opts ...ReadOption) (*PackageInfo, error) {
	cfg := newReadConfig(opts)

	dgst, size, err := fileDigest(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	ar, err := archive.Open(path, cfg.maxEntrySize)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	defer ar.Close()

	md, err := readMetadata(ar)
	if err != nil {
		return nil, err
	}

	stored := ar.Entries()
	entries := make([]EntryInfo, 0, len(stored))
	for _, e := range stored {
		entries = append(entries, EntryInfo(e))
	}

	cfg.log().Debug("package inspected", "path", path, "digest", dgst.String())
	return &PackageInfo{
		Path:     path,
		Size:     size,
		Digest:   dgst,
		Metadata: md,
		Entries:  entries,
	}, nil
}

func fileDigest(path string) (digest.Digest, int64, error) {
	f, err := os.Open(path) //nolint:gosec // caller-supplied package path
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, err
	}
	dgst, err := digest.SHA256.FromReader(f)
	if err != nil {
		return "", 0, fmt.Errorf("digest %s: %w", path, err)
	}
	return dgst, info.Size(), nil
}
