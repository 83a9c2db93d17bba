// Package cache defines the directory of packages that cache and checkpoint
// operations write into.
//
// Packages are located by file name alone: an object's plain cache is
// "<object>.<ext>" and each checkpoint is "<object>-<timestamp>.<ext>". The
// disk subpackage provides the filesystem implementation.
package cache
