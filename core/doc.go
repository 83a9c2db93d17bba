// Package meshcache caches the raw geometry of a mesh object in a compressed
// package and restores an equivalent mesh from it.
//
// A package is a zip archive holding exactly seven entries:
//   - mesh.mta: a fixed-size, versioned metadata record (counts, name, transform, colour)
//   - mesh.vtx, mesh.nrm, mesh.tex: vertex, normal and texture-vertex arrays
//   - mesh.idx, mesh.tdx, mesh.ndx: per-face vertex, texture and normal index arrays
//
// [WritePackage] stages the entries in memory or through temporary files and
// replaces the target only once the archive is complete. [ReadPackage]
// extracts and validates the entries. [Apply] copies a [BufferSet] into a
// live [Destination], sequentially or fanned out across a worker pool.
package meshcache
