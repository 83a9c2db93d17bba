package meshtype

import "errors"

// Sentinel errors for mesh cache operations.
var (
	// ErrSourceUnconvertible is returned when a live object cannot yield triangle geometry.
	ErrSourceUnconvertible = errors.New("meshcache: source cannot be converted to a triangle mesh")

	// ErrIO is returned for file and archive open, read, write and delete failures.
	ErrIO = errors.New("meshcache: i/o failure")

	// ErrMissingEntry is returned when a package lacks one of its named entries.
	ErrMissingEntry = errors.New("meshcache: missing package entry")

	// ErrMalformedMetadata is returned when the metadata record cannot be decoded.
	ErrMalformedMetadata = errors.New("meshcache: malformed metadata")

	// ErrSizeMismatch is returned when a buffer does not match its declared element count.
	ErrSizeMismatch = errors.New("meshcache: buffer size mismatch")

	// ErrAllocationFailed is returned when destination storage cannot be sized.
	ErrAllocationFailed = errors.New("meshcache: allocation failed")

	// ErrCancelled is returned when the context ends before a write, read
	// or parallel restore completes. The context error is wrapped with it.
	ErrCancelled = errors.New("meshcache: operation cancelled")

	// ErrInvalidArgument is returned for unusable command arguments.
	ErrInvalidArgument = errors.New("meshcache: invalid argument")
)
