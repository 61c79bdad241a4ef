package contextutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey string

const loggerKey contextKey = "logger"

// LoggerFromContext extracts a logger from context if available, otherwise returns the default logger.
// This helper can be used by any package that needs to extract a logger from context.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctxLogger := ctx.Value(loggerKey); ctxLogger != nil {
		if l, ok := ctxLogger.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// WithLogger returns a copy of ctx carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithSession tags the context logger with a fresh session ID and returns both.
// All log lines of one interactive run share the ID.
func WithSession(ctx context.Context, mode string) (context.Context, string) {
	sessionID := uuid.NewString()
	logger := LoggerFromContext(ctx).With("session_id", sessionID, "mode", mode)
	return WithLogger(ctx, logger), sessionID
}
