package meshcache

import "log/slog"

// restoreConfig holds configuration for Apply.
type restoreConfig struct {
	strategy Strategy
	workers  int
	chunk    int
	geometry bool
	logger   *slog.Logger
}

// RestoreOption configures Apply.
type RestoreOption func(*restoreConfig)

// WithStrategy selects sequential or parallel copy. The default is StrategyParallel.
func WithStrategy(s Strategy) RestoreOption {
	return func(cfg *restoreConfig) {
		cfg.strategy = s
	}
}

// WithWorkers sets the number of concurrent copy tasks for StrategyParallel.
// Values <= 0 use GOMAXPROCS.
func WithWorkers(n int) RestoreOption {
	return func(cfg *restoreConfig) {
		cfg.workers = n
	}
}

// WithChunkSize sets the number of elements each parallel task copies.
// Values <= 0 use the default.
func WithChunkSize(n int) RestoreOption {
	return func(cfg *restoreConfig) {
		cfg.chunk = n
	}
}

// WithGeometryOnly makes Apply replace only the geometry. The destination
// keeps its name, transform and wire colour.
func WithGeometryOnly() RestoreOption {
	return func(cfg *restoreConfig) {
		cfg.geometry = true
	}
}

// WithRestoreLogger sets the logger for restore operations.
// If not set, logging is disabled.
func WithRestoreLogger(logger *slog.Logger) RestoreOption {
	return func(cfg *restoreConfig) {
		cfg.logger = logger
	}
}
