package logger

import "context"

type contextKey string

const runIDKey contextKey = "run_id"

// ContextWithRunID returns a copy of ctx carrying a pipeline run ID.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns the run ID stored by ContextWithRunID, if any.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}
