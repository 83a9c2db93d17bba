package meshcache

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	meshcore "github.com/meigma/meshcache/core"
	"github.com/meigma/meshcache/core/cache"
	"github.com/meigma/meshcache/core/cache/disk"
)

// restoreLabel names in-place restores in the host's undo history.
const restoreLabel = "MeshCache :: Restore Mesh"

// Config is the session configuration a Client applies to every command.
type Config struct {
	// CacheDir is where Cache and Checkpoint write packages.
	CacheDir string `mapstructure:"cache_dir"`

	// Ext is the package file extension, without the dot.
	Ext string `mapstructure:"ext"`

	Buffering   Buffering        `mapstructure:"buffering"`
	Strategy    Strategy         `mapstructure:"strategy"`
	Compression CompressionLevel `mapstructure:"compression"`
	Method      Method           `mapstructure:"method"`

	// Workers bounds parallel restore tasks; zero uses GOMAXPROCS.
	Workers int `mapstructure:"workers"`

	// Debug enables debug-level logging of configuration and timings.
	Debug bool `mapstructure:"debug"`
}

// DefaultConfig returns the configuration a new Client starts with:
// the system temp directory, memory buffering, parallel restore and
// better compression.
func DefaultConfig() Config {
	return Config{
		CacheDir:    os.TempDir(),
		Ext:         disk.DefaultExt,
		Buffering:   BufferingMemory,
		Strategy:    StrategyParallel,
		Compression: CompressionBetter,
		Method:      MethodDeflate,
	}
}

// Client runs cache and restore commands against a host scene.
//
// Configuration may change at any time; each command reads a consistent
// copy of it when it starts. Commands on the same package path must be
// serialized by the caller.
type Client struct {
	mu    sync.RWMutex
	cfg   Config
	store *disk.Store

	scene   Scene
	history History

	handler slog.Handler
	level   *slog.LevelVar
	logger  *slog.Logger
	now     func() time.Time
}

// NewClient creates a Client with DefaultConfig modified by opts.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		cfg:   DefaultConfig(),
		level: new(slog.LevelVar),
		now:   time.Now,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	store, err := disk.New(c.cfg.CacheDir, disk.WithExt(c.cfg.Ext))
	if err != nil {
		return nil, fmt.Errorf("%w: cache dir %s: %w", ErrIO, c.cfg.CacheDir, err)
	}
	c.store = store
	c.cfg.Ext = store.Ext()

	if c.handler == nil {
		c.handler = slog.DiscardHandler
	}
	c.logger = slog.New(newLevelHandler(c.handler, c.level))
	c.SetDebug(c.cfg.Debug)
	return c, nil
}

// Config returns a copy of the current configuration.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Store returns the package store for the current cache directory.
func (c *Client) Store() cache.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

func (c *Client) settings() (Config, *disk.Store) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg, c.store
}

func (c *Client) writeOptions(cfg Config) []meshcore.WriteOption {
	return []meshcore.WriteOption{
		meshcore.WithBuffering(cfg.Buffering),
		meshcore.WithCompressionLevel(cfg.Compression),
		meshcore.WithCompressionMethod(cfg.Method),
		meshcore.WithWriteLogger(c.logger),
	}
}

func (c *Client) restoreOptions(cfg Config, extra ...meshcore.RestoreOption) []meshcore.RestoreOption {
	return append([]meshcore.RestoreOption{
		meshcore.WithStrategy(cfg.Strategy),
		meshcore.WithWorkers(cfg.Workers),
		meshcore.WithRestoreLogger(c.logger),
	}, extra...)
}

// Cache writes node to "<cacheDir>/<name>.<ext>", replacing any previous
// cache of the same object, and returns the package path.
func (c *Client) Cache(ctx context.Context, node Node) (string, error) {
	return c.cache(ctx, node, false)
}

// Checkpoint writes node to a timestamped package beside its cache and
// returns the package path.
func (c *Client) Checkpoint(ctx context.Context, node Node) (string, error) {
	return c.cache(ctx, node, true)
}

func (c *Client) cache(ctx context.Context, node Node, isCheckpoint bool) (string, error) {
	if node == nil {
		return "", fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	cfg, store := c.settings()
	start := time.Now()

	md, bufs, err := meshcore.Capture(node)
	if err != nil {
		return "", err
	}
	path := store.Path(node.Name(), isCheckpoint, c.now())
	if err := meshcore.WritePackage(ctx, path, md, bufs, c.writeOptions(cfg)...); err != nil {
		return "", err
	}

	c.logger.Debug("mesh cached",
		"object", md.Name,
		"path", path,
		"checkpoint", isCheckpoint,
		"elapsed", time.Since(start),
	)
	return path, nil
}

// Restore creates a new node from the package at path.
// The node is removed again if the restore fails.
func (c *Client) Restore(ctx context.Context, path string) (Node, error) {
	if c.scene == nil {
		return nil, fmt.Errorf("%w: no scene configured", ErrInvalidArgument)
	}
	cfg, _ := c.settings()
	start := time.Now()

	md, bufs, err := meshcore.ReadPackage(ctx, path, meshcore.WithReadLogger(c.logger))
	if err != nil {
		return nil, err
	}
	node, err := c.scene.CreateNode(md.Name)
	if err != nil {
		return nil, fmt.Errorf("create node %q: %w", md.Name, err)
	}
	if err := meshcore.Apply(ctx, node, md, bufs, c.restoreOptions(cfg)...); err != nil {
		c.scene.RemoveNode(node)
		return nil, err
	}

	c.logger.Debug("package restored",
		"path", path,
		"object", md.Name,
		"strategy", cfg.Strategy.String(),
		"elapsed", time.Since(start),
	)
	return node, nil
}

// RestoreInto replaces node's geometry with the package at path. The node
// keeps its name, transform and wire colour.
//
// node must be editable. When a History is configured the change is
// recorded as a RestoreOp so the host can undo it; a failed restore cancels
// the history group.
func (c *Client) RestoreInto(ctx context.Context, path string, node Node) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	if !node.Editable() {
		return fmt.Errorf("%w: node %q is not an editable mesh", ErrInvalidArgument, node.Name())
	}

	if c.history == nil {
		return c.restoreInto(ctx, path, node)
	}

	c.history.Begin()
	c.history.Put(newRestoreOp(c, node, path))
	if err := c.restoreInto(ctx, path, node); err != nil {
		c.history.Cancel()
		return err
	}
	c.history.Accept(restoreLabel)
	return nil
}

// restoreInto reads the package and applies its geometry to node without
// touching history.
func (c *Client) restoreInto(ctx context.Context, path string, node Node) error {
	cfg, _ := c.settings()
	start := time.Now()

	md, bufs, err := meshcore.ReadPackage(ctx, path, meshcore.WithReadLogger(c.logger))
	if err != nil {
		return err
	}
	if err := meshcore.Apply(ctx, node, md, bufs, c.restoreOptions(cfg, meshcore.WithGeometryOnly())...); err != nil {
		return err
	}

	c.logger.Debug("package restored into node",
		"path", path,
		"object", md.Name,
		"strategy", cfg.Strategy.String(),
		"elapsed", time.Since(start),
	)
	return nil
}

// CacheToMemory encodes node as a package held in memory.
func (c *Client) CacheToMemory(ctx context.Context, node Node) ([]byte, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	cfg, _ := c.settings()

	md, bufs, err := meshcore.Capture(node)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := meshcore.EncodePackage(ctx, &buf, md, bufs, c.writeOptions(cfg)...); err != nil {
		return nil, err
	}
	c.logger.Debug("mesh cached to memory", "object", md.Name, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// RestoreFromMemory replaces node's geometry with a package produced by
// CacheToMemory. It is not recorded in history.
func (c *Client) RestoreFromMemory(ctx context.Context, data []byte, node Node) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	cfg, _ := c.settings()

	md, bufs, err := meshcore.DecodePackage(ctx, data, meshcore.WithReadLogger(c.logger))
	if err != nil {
		return err
	}
	return meshcore.Apply(ctx, node, md, bufs, c.restoreOptions(cfg, meshcore.WithGeometryOnly())...)
}

// Inspect summarizes the package at path.
func (c *Client) Inspect(path string) (*PackageInfo, error) {
	return meshcore.Inspect(path, meshcore.WithReadLogger(c.logger))
}

// Checkpoints lists the checkpoints of object in the cache directory, oldest first.
func (c *Client) Checkpoints(object string) ([]Package, error) {
	_, store := c.settings()
	return store.Checkpoints(object)
}

// Purge deletes every package file under the cache directory and returns
// how many were removed. Other files are left alone.
func (c *Client) Purge() (int, error) {
	_, store := c.settings()
	n, err := store.Purge()
	if err != nil {
		return n, fmt.Errorf("%w: purge %s: %w", ErrIO, store.Dir(), err)
	}
	c.logger.Debug("cache purged", "dir", store.Dir(), "removed", n)
	return n, nil
}

// CacheDir returns the current cache directory.
func (c *Client) CacheDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.CacheDir
}

// SetCacheDir points the client at dir, creating it if needed.
func (c *Client) SetCacheDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: empty cache dir", ErrInvalidArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	store, err := disk.New(dir, disk.WithExt(c.cfg.Ext))
	if err != nil {
		return fmt.Errorf("%w: cache dir %s: %w", ErrIO, dir, err)
	}
	c.cfg.CacheDir = dir
	c.store = store
	c.logger.Debug("cache dir set", "dir", dir)
	return nil
}

// SetRestoreStrategy selects sequential or parallel restore.
func (c *Client) SetRestoreStrategy(s Strategy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Strategy = s
	c.logger.Debug("restore strategy set", "strategy", s.String())
}

// SetBufferingMode selects disk or memory staging for writes.
func (c *Client) SetBufferingMode(b Buffering) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Buffering = b
	c.logger.Debug("buffering mode set", "buffering", b.String())
}

// SetCompression selects the compression level for writes.
func (c *Client) SetCompression(l CompressionLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Compression = l
	c.logger.Debug("compression set", "compression", l.String())
}

// SetCompressionMethod selects the entry compression method for writes.
func (c *Client) SetCompressionMethod(m Method) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Method = m
	c.logger.Debug("compression method set", "method", m.String())
}

// SetDebug switches debug logging on or off.
func (c *Client) SetDebug(on bool) {
	c.mu.Lock()
	c.cfg.Debug = on
	c.mu.Unlock()
	if on {
		c.level.Set(slog.LevelDebug)
	} else {
		c.level.Set(slog.LevelInfo)
	}
}

// Set applies a configuration value given as script text.
//
// Options are "cache_dir", "strategy" ("single"|"sequential"|"multi"|"parallel"),
// "buffering" ("disk"|"memory"), "compression" ("faster"|"better"),
// "method" ("deflate"|"zstd") and "debug" (a boolean).
func (c *Client) Set(option, value string) error {
	switch strings.ToLower(strings.TrimSpace(option)) {
	case "cache_dir", "cachedir", "cache_path":
		return c.SetCacheDir(value)
	case "strategy", "restore_mode":
		s, err := meshcore.ParseStrategy(value)
		if err != nil {
			return err
		}
		c.SetRestoreStrategy(s)
	case "buffering", "buffering_mode":
		b, err := meshcore.ParseBuffering(value)
		if err != nil {
			return err
		}
		c.SetBufferingMode(b)
	case "compression", "compression_mode":
		l, err := meshcore.ParseCompressionLevel(value)
		if err != nil {
			return err
		}
		c.SetCompression(l)
	case "method":
		m, err := meshcore.ParseMethod(value)
		if err != nil {
			return err
		}
		c.SetCompressionMethod(m)
	case "debug":
		on, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: debug %q", ErrInvalidArgument, value)
		}
		c.SetDebug(on)
	default:
		return fmt.Errorf("%w: unknown option %q", ErrInvalidArgument, option)
	}
	return nil
}
