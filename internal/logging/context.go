package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey keys the logger carried in a context.
type ctxKey struct{}

// FromContext returns the logger attached to ctx, or the default logger.
// The CLI attaches its configured logger before command execution; library
// callers without one get the package default.
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return logger
	}
	return Default()
}

// WithLogger attaches logger to ctx for retrieval by FromContext.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}
