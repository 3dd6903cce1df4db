package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// InvocationIDKey is the context key for the invocation ID
	InvocationIDKey contextKey = "invocation_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// NewInvocationID returns a fresh identifier for one CLI run
func NewInvocationID() string {
	return uuid.NewString()
}

// WithInvocationID adds the invocation ID to context and returns the enriched logger
func WithInvocationID(ctx context.Context, logger *zap.Logger, invocationID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, InvocationIDKey, invocationID)
	enrichedLogger := logger.With(zap.String("invocation_id", invocationID))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// GetInvocationID retrieves the invocation ID from context
func GetInvocationID(ctx context.Context) string {
	if id, ok := ctx.Value(InvocationIDKey).(string); ok {
		return id
	}
	return ""
}
