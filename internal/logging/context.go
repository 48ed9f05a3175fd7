package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// loggerContextKey keys the run-scoped logger in a context. An unexported
// struct type cannot collide with keys from other packages.
type loggerContextKey struct{}

// WithLogger attaches logger to ctx so the workers spawned for a run share
// the command's logger instead of the package default.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromContext returns the logger attached to ctx by WithLogger. When none
// was attached, or ctx is nil, it falls back to Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerContextKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
