package meshcache

import (
	"github.com/meigma/meshcache/core/internal/layout"
	"github.com/meigma/meshcache/core/internal/meshtype"
)

// Re-export types from internal/meshtype for public API.
type (
	// BufferSet is the six flat arrays that make up mesh geometry.
	BufferSet = meshtype.BufferSet

	// Counts holds the element count of each buffer class.
	Counts = meshtype.Counts

	// Metadata describes a cached mesh.
	Metadata = meshtype.Metadata

	// AffineParts is the decomposition of an affine transform.
	AffineParts = meshtype.AffineParts

	Point3     = meshtype.Point3
	UVVert     = meshtype.UVVert
	Face       = meshtype.Face
	TVFace     = meshtype.TVFace
	NormalFace = meshtype.NormalFace
	Matrix3    = meshtype.Matrix3
	Quat       = meshtype.Quat
	Color      = meshtype.Color

	// Buffering selects how entries are staged before archiving.
	Buffering = meshtype.Buffering

	// Strategy selects how buffers are copied into the destination.
	Strategy = meshtype.Strategy

	// CompressionLevel trades encode speed for archive size.
	CompressionLevel = meshtype.CompressionLevel

	// Method identifies the compression method of archive entries.
	Method = meshtype.Method
)

// Re-export mode constants.
const (
	BufferingMemory = meshtype.BufferingMemory
	BufferingDisk   = meshtype.BufferingDisk

	StrategyParallel   = meshtype.StrategyParallel
	StrategySequential = meshtype.StrategySequential

	CompressionBetter = meshtype.CompressionBetter
	CompressionFaster = meshtype.CompressionFaster

	MethodDeflate = meshtype.MethodDeflate
	MethodZstd    = meshtype.MethodZstd
)

// Edge visibility bits stored in Face.Flags.
const (
	EdgeA   = meshtype.EdgeA
	EdgeB   = meshtype.EdgeB
	EdgeC   = meshtype.EdgeC
	EdgeAll = meshtype.EdgeAll
)

// Package entry names.
const (
	EntryMeta        = layout.EntryMeta
	EntryVertices    = layout.EntryVertices
	EntryNormals     = layout.EntryNormals
	EntryUVs         = layout.EntryUVs
	EntryFaces       = layout.EntryFaces
	EntryUVFaces     = layout.EntryUVFaces
	EntryNormalFaces = layout.EntryNormalFaces
)

// Entries returns the seven entry names in archive order.
func Entries() []string {
	return append([]string(nil), layout.Entries...)
}

// Identity returns the identity transform.
var Identity = meshtype.Identity

// RGB packs 8-bit channels into a Color.
var RGB = meshtype.RGB

// NewGeometry allocates a zeroed BufferSet sized exactly to counts.
// limit caps the total element count; zero means no cap.
var NewGeometry = meshtype.NewGeometry

// Sentinel errors re-exported from internal/meshtype.
var (
	// ErrSourceUnconvertible is returned when a live object cannot yield triangle geometry.
	ErrSourceUnconvertible = meshtype.ErrSourceUnconvertible

	// ErrIO is returned for file and archive failures.
	ErrIO = meshtype.ErrIO

	// ErrMissingEntry is returned when a package lacks one of its named entries.
	ErrMissingEntry = meshtype.ErrMissingEntry

	// ErrMalformedMetadata is returned when the metadata record cannot be decoded.
	ErrMalformedMetadata = meshtype.ErrMalformedMetadata

	// ErrSizeMismatch is returned when a buffer does not match its declared element count.
	ErrSizeMismatch = meshtype.ErrSizeMismatch

	// ErrAllocationFailed is returned when destination storage cannot be sized.
	ErrAllocationFailed = meshtype.ErrAllocationFailed

	// ErrCancelled is returned when the context ends before an operation completes.
	ErrCancelled = meshtype.ErrCancelled

	// ErrInvalidArgument is returned for unusable command arguments.
	ErrInvalidArgument = meshtype.ErrInvalidArgument
)

// Mode parsers accepting the script names of each mode.
var (
	ParseBuffering        = meshtype.ParseBuffering
	ParseStrategy         = meshtype.ParseStrategy
	ParseCompressionLevel = meshtype.ParseCompressionLevel
	ParseMethod           = meshtype.ParseMethod
)
