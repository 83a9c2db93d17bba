package meshcache

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Option configures a Client.
type Option func(*Client) error

// WithConfig replaces the whole starting configuration.
// Empty CacheDir and Ext fall back to their defaults.
func WithConfig(cfg Config) Option {
	return func(c *Client) error {
		def := DefaultConfig()
		if cfg.CacheDir == "" {
			cfg.CacheDir = def.CacheDir
		}
		if cfg.Ext == "" {
			cfg.Ext = def.Ext
		}
		c.cfg = cfg
		return nil
	}
}

// WithCacheDir sets the directory packages are written to.
func WithCacheDir(dir string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("%w: empty cache dir", ErrInvalidArgument)
		}
		c.cfg.CacheDir = dir
		return nil
	}
}

// WithExt sets the package file extension.
func WithExt(ext string) Option {
	return func(c *Client) error {
		if strings.Trim(ext, ". ") == "" {
			return fmt.Errorf("%w: empty package extension", ErrInvalidArgument)
		}
		c.cfg.Ext = ext
		return nil
	}
}

// WithBufferingMode sets the starting buffering mode.
func WithBufferingMode(b Buffering) Option {
	return func(c *Client) error {
		c.cfg.Buffering = b
		return nil
	}
}

// WithRestoreStrategy sets the starting restore strategy.
func WithRestoreStrategy(s Strategy) Option {
	return func(c *Client) error {
		c.cfg.Strategy = s
		return nil
	}
}

// WithCompression sets the starting compression level.
func WithCompression(l CompressionLevel) Option {
	return func(c *Client) error {
		c.cfg.Compression = l
		return nil
	}
}

// WithCompressionMethod sets the starting entry compression method.
func WithCompressionMethod(m Method) Option {
	return func(c *Client) error {
		c.cfg.Method = m
		return nil
	}
}

// WithWorkers bounds parallel restore tasks. Zero uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Client) error {
		if n < 0 {
			return fmt.Errorf("%w: workers %d", ErrInvalidArgument, n)
		}
		c.cfg.Workers = n
		return nil
	}
}

// WithDebug starts the client with debug logging on.
func WithDebug(on bool) Option {
	return func(c *Client) error {
		c.cfg.Debug = on
		return nil
	}
}

// WithScene sets the host scene used by Restore.
func WithScene(s Scene) Option {
	return func(c *Client) error {
		c.scene = s
		return nil
	}
}

// WithHistory sets the host undo history used by RestoreInto.
// Without one, in-place restores cannot be undone.
func WithHistory(h History) Option {
	return func(c *Client) error {
		c.history = h
		return nil
	}
}

// WithLogHandler sets the handler the client logs through.
// The client filters records by its own debug setting before they reach h.
// If not set, logging is disabled.
func WithLogHandler(h slog.Handler) Option {
	return func(c *Client) error {
		c.handler = h
		return nil
	}
}

// WithClock sets the time source for checkpoint names.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now == nil {
			return fmt.Errorf("%w: nil clock", ErrInvalidArgument)
		}
		c.now = now
		return nil
	}
}
