// Package logger holds the process-wide structured logger. It discards all
// output until Init enables it.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// EnvAllocLog enables debug logging to stderr when set to any non-empty value.
const EnvAllocLog = "HEAPKIT_LOG_ALLOC"

// L is the global logger instance. It's initialized to discard all output by
// default, or to log at debug level on stderr when EnvAllocLog is set.
var L = defaultLogger()

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level
	JSON    bool       // JSON handler instead of text
}

// Init configures logging. Call from main() before any log calls.
func Init(opts Options) {
	if !opts.Enabled {
		L = discard()
		return
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(w, hopts))
		return
	}
	L = slog.New(slog.NewTextHandler(w, hopts))
}

func defaultLogger() *slog.Logger {
	if os.Getenv(EnvAllocLog) == "" {
		return discard()
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
