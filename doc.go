// Package meshcache caches live mesh objects to compressed packages on disk
// and restores them, either as new objects or in place with undo support.
//
// [Client] is the command surface a host exposes to its scripting layer. It
// owns the session configuration (cache directory, buffering mode, restore
// strategy, compression) and adapts the host's scene and undo history, which
// are described by the [Scene], [Node] and [History] interfaces. The package
// format and the serialization engine live in the [core] subpackage.
//
// # Quick Start
//
//	c, err := meshcache.NewClient(
//	    meshcache.WithScene(scene),
//	    meshcache.WithHistory(history),
//	    meshcache.WithCacheDir("/var/cache/meshes"),
//	)
//	if err != nil {
//	    return err
//	}
//	path, err := c.Cache(ctx, node)
//	...
//	err = c.RestoreInto(ctx, path, node)
//
// # Checkpoints
//
// [Client.Checkpoint] writes "<object>-<YYYY-MM-DD-HH-MM-SS.mmm>.mxo" so
// repeated snapshots of one object sit side by side. Two checkpoints of the
// same object within one millisecond share a name and the later one wins.
//
// [core]: https://pkg.go.dev/github.com/meigma/meshcache/core
package meshcache
