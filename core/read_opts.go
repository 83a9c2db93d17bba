package meshcache

import "log/slog"

// DefaultMaxEntrySize is the default cap on a single extracted entry (1GiB).
const DefaultMaxEntrySize = 1 << 30

// readConfig holds configuration for package reading.
type readConfig struct {
	maxEntrySize    uint64
	maxEntrySizeSet bool
	logger          *slog.Logger
}

// ReadOption configures ReadPackage and Inspect.
type ReadOption func(*readConfig)

// WithMaxEntrySize caps the uncompressed size of each entry.
// Zero disables the cap.
func WithMaxEntrySize(limit uint64) ReadOption {
	return func(cfg *readConfig) {
		cfg.maxEntrySize = limit
		cfg.maxEntrySizeSet = true
	}
}

// WithReadLogger sets the logger for read operations.
// If not set, logging is disabled.
func WithReadLogger(logger *slog.Logger) ReadOption {
	return func(cfg *readConfig) {
		cfg.logger = logger
	}
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.maxEntrySizeSet {
		cfg.maxEntrySize = DefaultMaxEntrySize
	}
	return cfg
}

func (cfg readConfig) log() *slog.Logger {
	if cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return cfg.logger
}
