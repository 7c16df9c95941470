package observability

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// NewRequestID mints a random request ID.
func NewRequestID() string {
	return uuid.New().String()
}

// ResolveRequestID returns incoming when it is a UUID, so callers can
// correlate their own logs, and a fresh ID otherwise.
func ResolveRequestID(incoming string) string {
	id, err := uuid.Parse(incoming)
	if err != nil {
		return NewRequestID()
	}
	return id.String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestLogger is LoggerWithTrace plus the request_id field when ctx
// carries one.
func RequestLogger(ctx context.Context) *zap.Logger {
	logger := LoggerWithTrace(ctx)
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With(zap.String("request_id", id))
	}
	return logger
}
