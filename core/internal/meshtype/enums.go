package meshtype

import (
	"fmt"
	"strings"
)

// Buffering selects how entries are staged before archiving.
type Buffering uint8

const (
	// BufferingMemory holds every entry in memory.
	BufferingMemory Buffering = iota
	// BufferingDisk stages every entry through a temporary file.
	BufferingDisk
)

// String returns the script name of the mode.
func (b Buffering) String() string {
	switch b {
	case BufferingMemory:
		return "memory"
	case BufferingDisk:
		return "disk"
	default:
		return "unknown"
	}
}

// Strategy selects how buffers are copied into the destination.
type Strategy uint8

const (
	// StrategyParallel fans each array out across a worker pool.
	StrategyParallel Strategy = iota
	// StrategySequential copies each array on the calling goroutine.
	StrategySequential
)

// String returns the script name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyParallel:
		return "parallel"
	case StrategySequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// CompressionLevel trades encode speed for archive size.
type CompressionLevel uint8

const (
	// CompressionBetter favours smaller archives.
	CompressionBetter CompressionLevel = iota
	// CompressionFaster favours encode speed.
	CompressionFaster
)

// String returns the script name of the level.
func (c CompressionLevel) String() string {
	switch c {
	case CompressionBetter:
		return "better"
	case CompressionFaster:
		return "faster"
	default:
		return "unknown"
	}
}

// Method identifies the compression method of archive entries.
type Method uint8

const (
	// MethodDeflate is standard zip deflate.
	MethodDeflate Method = iota
	// MethodZstd is zstd (zip method 93).
	MethodZstd
)

// String returns the human-readable name of the method.
func (m Method) String() string {
	switch m {
	case MethodDeflate:
		return "deflate"
	case MethodZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseBuffering accepts "memory" or "disk".
func ParseBuffering(s string) (Buffering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return BufferingMemory, nil
	case "disk":
		return BufferingDisk, nil
	}
	return 0, fmt.Errorf("%w: buffering mode %q", ErrInvalidArgument, s)
}

// ParseStrategy accepts "parallel" or "multi", and "sequential" or "single".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parallel", "multi":
		return StrategyParallel, nil
	case "sequential", "single":
		return StrategySequential, nil
	}
	return 0, fmt.Errorf("%w: restore strategy %q", ErrInvalidArgument, s)
}

// ParseCompressionLevel accepts "better" or "faster".
func ParseCompressionLevel(s string) (CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "better":
		return CompressionBetter, nil
	case "faster":
		return CompressionFaster, nil
	}
	return 0, fmt.Errorf("%w: compression level %q", ErrInvalidArgument, s)
}

// ParseMethod accepts "deflate" or "zstd".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deflate":
		return MethodDeflate, nil
	case "zstd":
		return MethodZstd, nil
	}
	return 0, fmt.Errorf("%w: compression method %q", ErrInvalidArgument, s)
}

// MarshalText implements encoding.TextMarshaler.
func (b Buffering) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Buffering) UnmarshalText(text []byte) error {
	v, err := ParseBuffering(string(text))
	if err == nil {
		*b = v
	}
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err == nil {
		*s = v
	}
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionLevel) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompressionLevel) UnmarshalText(text []byte) error {
	v, err := ParseCompressionLevel(string(text))
	if err == nil {
		*c = v
	}
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err == nil {
		*m = v
	}
	return err
}
