// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are set by transport middleware and consumed by the engine and the
// upstream clients. Keeping this package free of net/http lets the engine
// import only what it needs.
//
// Usage in the engine:
//
//	now := requestcontext.Now(ctx)
//	token := requestcontext.Token(ctx)
//
// Usage in tests:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	userIDKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	tokenKey       struct{}
	permissionsKey struct{}
)

// WithUserID records the authenticated user on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user ID, or "" when unauthenticated.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey{}).(string)
	return v
}

// WithRequestID records the request correlation ID on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request correlation ID, or "".
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// WithTime pins the request time. Temporal validation reads the instant from
// here so tests can inject a fixed clock.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the pinned request time, falling back to the wall clock. Each
// request pins its own instant, so re-validation on resubmission always sees
// a fresh one.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithPermissions records the caller's granted permissions on the context.
func WithPermissions(ctx context.Context, permissions []string) context.Context {
	return context.WithValue(ctx, permissionsKey{}, permissions)
}

// HasPermission reports whether the caller holds the named permission.
func HasPermission(ctx context.Context, permission string) bool {
	permissions, _ := ctx.Value(permissionsKey{}).([]string)
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// WithToken records the caller's bearer token for forwarding to upstream
// services.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// Token returns the bearer token to present to upstream services, or "".
func Token(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey{}).(string)
	return v
}
