package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey is private so only WithLogger can install a logger.
type ctxKey struct{}

// WithLogger returns a copy of ctx carrying logger. The root command
// attaches its logger this way so every subcommand logs through the same
// instance.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger carried by ctx, or Default when none is.
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return logger
	}
	return Default()
}
