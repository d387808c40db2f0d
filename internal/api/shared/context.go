package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type for values this package stores in a context.
type ContextKey string

// TraceIDKey is the key for the trace ID in the request context
const TraceIDKey ContextKey = "traceID"

// TraceIDHeader carries the trace ID on requests and responses.
const TraceIDHeader = "X-Trace-ID"

// NewTraceID returns a fresh random trace ID.
func NewTraceID() string {
	return uuid.NewString()
}

// SetTraceID stores traceID in the context. An empty or malformed traceID is
// replaced with a new one, so callers can pass an untrusted header value.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	if _, err := uuid.Parse(traceID); err != nil {
		traceID = NewTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
