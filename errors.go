package meshcache

import meshcore "github.com/meigma/meshcache/core"

// Errors re-exported from core.
var (
	// ErrSourceUnconvertible is returned when a node cannot yield triangle geometry.
	ErrSourceUnconvertible = meshcore.ErrSourceUnconvertible

	// ErrIO is returned for file and archive failures.
	ErrIO = meshcore.ErrIO

	// ErrMissingEntry is returned when a package lacks one of its named entries.
	ErrMissingEntry = meshcore.ErrMissingEntry

	// ErrMalformedMetadata is returned when the metadata record cannot be decoded.
	ErrMalformedMetadata = meshcore.ErrMalformedMetadata

	// ErrSizeMismatch is returned when a buffer does not match its declared element count.
	ErrSizeMismatch = meshcore.ErrSizeMismatch

	// ErrAllocationFailed is returned when destination storage cannot be sized.
	ErrAllocationFailed = meshcore.ErrAllocationFailed

	// ErrCancelled is returned when the context ends before an operation completes.
	ErrCancelled = meshcore.ErrCancelled

	// ErrInvalidArgument is returned for unusable command arguments.
	ErrInvalidArgument = meshcore.ErrInvalidArgument
)
