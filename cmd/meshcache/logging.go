package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for -log-file.
const (
	logMaxSizeMB  = 50
	logMaxBackups = 3
	logMaxAgeDays = 7
)

// newLogHandler returns a charmbracelet handler writing to stderr, or to a
// rotating logfmt file when path is set. The client filters by its debug
// setting, so the handler itself passes everything from debug up.
func newLogHandler(stderr io.Writer, path string) (slog.Handler, func(), error) {
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "meshcache",
		Level:           log.DebugLevel,
	}
	if path == "" {
		return log.NewWithOptions(stderr, opts), func() {}, nil
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	opts.Formatter = log.LogfmtFormatter
	return log.NewWithOptions(file, opts), func() { _ = file.Close() }, nil
}
