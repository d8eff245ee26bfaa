package api

import (
	"context"
)

type keyType string

const requestIDKey keyType = "requestID"

func ctxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ctxGetRequestID returns the request ID set by the RequestID middleware, or "".
func ctxGetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
