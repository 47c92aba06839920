// Package logging builds the process logger and carries request-scoped loggers through
// contexts.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Log formats accepted by Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures a logger.
type Options struct {
	// Level is a logrus level name such as "debug" or "info". Defaults to "info".
	Level string

	// Format is FormatText or FormatJSON. Defaults to FormatText.
	Format string

	// Output receives log lines. Defaults to os.Stderr, which keeps stdout free for the
	// stdio MCP transport.
	Output io.Writer
}

type (
	loggerKey    struct{}
	requestIDKey struct{}
)

//nolint:gochecknoglobals // Process-wide logger shared by tools and commands.
var (
	defaultMu     sync.RWMutex
	defaultLogger = mustNew(Options{})
)

// New creates a logger from opts.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	logger.SetOutput(opts.Output)
	if opts.Output == nil {
		logger.SetOutput(os.Stderr)
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	return logger, nil
}

func mustNew(opts Options) *logrus.Logger {
	logger, err := New(opts)
	if err != nil {
		panic(err)
	}
	return logger
}

// Default returns the process logger.
func Default() *logrus.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process logger.
func SetDefault(logger *logrus.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// WithTool returns a logger annotated with an MCP tool name.
func WithTool(name string) *logrus.Entry {
	return Default().WithField("tool", name)
}

// ContextWithLogger stores logger in ctx.
func ContextWithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger stored in ctx, or the process logger.
func LoggerFromContext(ctx context.Context) logrus.FieldLogger {
	if logger, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok && logger != nil {
		return logger
	}
	return Default()
}

// ContextWithRequestID assigns a fresh request id to ctx and returns it.
func ContextWithRequestID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, requestIDKey{}, id), id
}

// RequestIDFromContext returns the request id stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestStart logs the beginning of a tool request.
func RequestStart(logger logrus.FieldLogger, operation string, args map[string]any) {
	logger.WithFields(logrus.Fields{
		"operation": operation,
		"arg_count": len(args),
	}).Debug("Request started")
}

// RequestEnd logs the outcome and duration of a tool request.
func RequestEnd(logger logrus.FieldLogger, operation string, success bool, duration time.Duration, err error) {
	entry := logger.WithFields(logrus.Fields{
		"operation":   operation,
		"success":     success,
		"duration_ms": duration.Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("Request failed")
		return
	}
	entry.Debug("Request completed")
}
