// Package logger provides structured logging for the extraction engine.
// Extraction itself never writes to the log above debug level, so the
// default configuration stays silent; the CLI and embedding applications
// opt in via Init or SetLogger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	defaultLogger *slog.Logger
	mu            sync.RWMutex
)

func init() {
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Options configures the package logger.
type Options struct {
	Debug  bool         // log strategy attempts and other debug detail
	Quiet  bool         // errors only
	JSON   bool         // JSON handler instead of text
	Output io.Writer    // destination, stderr when nil
	Logger *slog.Logger // custom logger, overrides every other option
}

// Init replaces the package logger according to opts. Call it before
// extraction begins; it is not synchronized against in-flight logging
// beyond the internal lock.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	if opts.Logger != nil {
		defaultLogger = opts.Logger
		return
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.Quiet {
		level = slog.LevelError
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(output, handlerOpts)
	}

	defaultLogger = slog.New(handler)
}

// SetLogger routes all package logging through the given slog.Logger so
// embedding applications can keep a single logging setup.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// With returns the current logger extended with the given attributes.
func With(args ...any) *slog.Logger {
	return current().With(args...)
}
