package common

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRunID  contextKey = "run_id"
	ContextKeySource contextKey = "source"
)

// WithRunID adds a parse run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextKeyRunID, runID)
}

// RunIDFromContext extracts the run ID from context, minting one if absent.
func RunIDFromContext(ctx context.Context) string {
	if runID, ok := ctx.Value(ContextKeyRunID).(string); ok && runID != "" {
		return runID
	}
	return uuid.NewString()
}

// WithSource records where the payload came from (file path, upload name).
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, ContextKeySource, source)
}

// SourceFromContext extracts the payload source from context
func SourceFromContext(ctx context.Context) string {
	if source, ok := ctx.Value(ContextKeySource).(string); ok {
		return source
	}
	return ""
}
