// Package ctxlog carries a *slog.Logger through context.Context so deep
// call paths (manifest loading, provenance parsing, the replay driver) can
// log without threading a logger argument everywhere.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from
// other packages.
type key struct{}

var loggerKey = key{}

// With returns a new context with the provided logger embedded.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// From extracts the logger from a context. Contexts without a logger fall
// back to slog.Default so library code can always log safely.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
