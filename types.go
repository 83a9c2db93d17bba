package meshcache

import (
	meshcore "github.com/meigma/meshcache/core"
	"github.com/meigma/meshcache/core/cache"
)

// Re-export mode types from core.
type (
	// Buffering selects how entries are staged before archiving.
	Buffering = meshcore.Buffering

	// Strategy selects how buffers are copied into a node.
	Strategy = meshcore.Strategy

	// CompressionLevel trades encode speed for archive size.
	CompressionLevel = meshcore.CompressionLevel

	// Method identifies the compression method of archive entries.
	Method = meshcore.Method

	// Package describes one package file in the cache directory.
	Package = cache.Package

	// PackageInfo summarizes a package without decoding its buffers.
	PackageInfo = meshcore.PackageInfo
)

// Re-export mode constants.
const (
	BufferingMemory = meshcore.BufferingMemory
	BufferingDisk   = meshcore.BufferingDisk

	StrategyParallel   = meshcore.StrategyParallel
	StrategySequential = meshcore.StrategySequential

	CompressionBetter = meshcore.CompressionBetter
	CompressionFaster = meshcore.CompressionFaster

	MethodDeflate = meshcore.MethodDeflate
	MethodZstd    = meshcore.MethodZstd
)
