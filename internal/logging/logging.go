// Package logging holds the process-wide zap logger and carries
// request-scoped loggers through context.Context.
//
// Diagnostics always go to stderr (and optionally a file): stdout belongs to
// the prompts and to the download log sink.
package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// SetLogger replaces the process-wide logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// New builds a console logger writing to stderr at the given level.
// When filePath is not empty, log lines are also appended to that file.
func New(level, filePath string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	if lvl > zapcore.DebugLevel {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if filePath != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, filePath)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

type loggingCtxKey int

const (
	logKey = loggingCtxKey(iota)
)

// FromContext returns the logger stored in ctx by NewContext, or the
// process-wide logger.
func FromContext(ctx context.Context) *zap.Logger {
	v := ctx.Value(logKey)
	if v == nil {
		return logger
	}
	if vlog, ok := v.(*zap.Logger); ok {
		return vlog
	}
	return logger
}

// NewContext returns a copy of ctx whose logger carries the given fields.
func NewContext(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, logKey, FromContext(ctx).With(fields...))
}
