package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// ConsoleLogger writes log messages to a writer (stderr by default) via slog.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	logger  *slog.Logger
}

// ConsoleOption configures a ConsoleLogger.
type ConsoleOption func(*consoleOptions)

type consoleOptions struct {
	writer  io.Writer
	noColor bool
	timeFmt string
}

// WithWriter sends output to w instead of stderr.
func WithWriter(w io.Writer) ConsoleOption {
	return func(o *consoleOptions) { o.writer = w }
}

// WithoutColor disables ANSI colors, e.g. when output is not a terminal.
func WithoutColor() ConsoleOption {
	return func(o *consoleOptions) { o.noColor = true }
}

// WithTimeFormat sets the timestamp layout. An empty layout drops timestamps.
func WithTimeFormat(layout string) ConsoleOption {
	return func(o *consoleOptions) { o.timeFmt = layout }
}

// NewConsoleLogger creates a new ConsoleLogger.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool, opts ...ConsoleOption) *ConsoleLogger {
	o := consoleOptions{
		writer:  os.Stderr,
		timeFmt: time.Kitchen,
	}
	for _, opt := range opts {
		opt(&o)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(o.writer, &tint.Options{
		Level:      level,
		TimeFormat: o.timeFmt,
		NoColor:    o.noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 && o.timeFmt == "" {
				return slog.Attr{}
			}
			return a
		},
	})

	return &ConsoleLogger{
		verbose: verbose,
		logger:  slog.New(handler),
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.log(slog.LevelDebug, format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.log(slog.LevelInfo, format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.log(slog.LevelError, format, args...)
}

// Slog exposes the underlying structured logger for callers that want attributes.
func (l *ConsoleLogger) Slog() *slog.Logger {
	return l.logger
}

func (l *ConsoleLogger) log(level slog.Level, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.logger.Log(context.Background(), level, msg)
}
