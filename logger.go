package shape

import (
	"log/slog"

	"github.com/gogpu/gg-shape/internal/logger"
)

// SetLogger configures the logger for gg-shape and all its sub-packages.
// By default, nothing is logged. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gg-shape:
//   - [slog.LevelDebug]: skipped fills, buffer sizes, font and image loading
//   - [slog.LevelInfo]: lifecycle events in command line tools
//   - [slog.LevelWarn]: unsupported markup, unreadable fonts or images
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	shape.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the current logger used by gg-shape.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logger.Get()
}
