package meshcache

import "log/slog"

// writeConfig holds configuration for package writing.
type writeConfig struct {
	buffering Buffering
	level     CompressionLevel
	method    Method
	tempDir   string
	logger    *slog.Logger
}

// WriteOption configures WritePackage.
type WriteOption func(*writeConfig)

// WithBuffering selects memory or disk staging. The default is BufferingMemory.
func WithBuffering(b Buffering) WriteOption {
	return func(cfg *writeConfig) {
		cfg.buffering = b
	}
}

// WithCompressionLevel sets the level applied to every entry.
// The default is CompressionBetter.
func WithCompressionLevel(l CompressionLevel) WriteOption {
	return func(cfg *writeConfig) {
		cfg.level = l
	}
}

// WithCompressionMethod sets the entry compression method.
// The default is MethodDeflate, which any zip tool can read.
func WithCompressionMethod(m Method) WriteOption {
	return func(cfg *writeConfig) {
		cfg.method = m
	}
}

// WithTempDir sets the parent directory for disk staging.
// Empty uses os.TempDir().
func WithTempDir(dir string) WriteOption {
	return func(cfg *writeConfig) {
		cfg.tempDir = dir
	}
}

// WithWriteLogger sets the logger for write operations.
// If not set, logging is disabled.
func WithWriteLogger(logger *slog.Logger) WriteOption {
	return func(cfg *writeConfig) {
		cfg.logger = logger
	}
}
