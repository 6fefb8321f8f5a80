package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type (
	loggerKey struct{}
	fileKey   struct{}
)

// FromContext returns the logger attached to ctx, or the default logger.
// The fixer, pipeline and runner all log through this, so a command decides
// once where library output goes.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithFile scopes the context logger to one file: every entry logged through
// the returned context carries the path field. Scoping again to the same path
// is a no-op, so the runner and the pipeline can both call it.
func WithFile(ctx context.Context, path string) (context.Context, *log.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	if current, ok := ctx.Value(fileKey{}).(string); ok && current == path {
		return ctx, FromContext(ctx)
	}

	logger := FromContext(ctx).With(FieldPath, path)
	ctx = context.WithValue(WithLogger(ctx, logger), fileKey{}, path)
	return ctx, logger
}
