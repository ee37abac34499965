// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware and Lambda adapters set the values; services read them without
// importing net/http or the Lambda event types.
//
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//	requestID := requestcontext.RequestID(ctx)
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	clientIPKey    struct{}
	requestTimeKey struct{}
)

// RequestID retrieves the request correlation ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request correlation ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ClientIP retrieves the caller's IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// WithClientIP injects the caller's IP address into the context.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
