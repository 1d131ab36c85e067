package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	usernameKey  contextKey = "username"
	roleKey      contextKey = "role"
	requestIDKey contextKey = "requestID"
)

// Caller roles. A curator has every permission a user has, plus
// administrative ones.
const (
	RoleUser    = "USER"
	RoleCurator = "CURATOR"
)

// UsernameFrom retrieves the authenticated username from the request context.
func UsernameFrom(r *http.Request) string {
	if v, ok := r.Context().Value(usernameKey).(string); ok {
		return v
	}
	return ""
}

// RoleFrom retrieves the caller role from the request context.
func RoleFrom(r *http.Request) string {
	if v, ok := r.Context().Value(roleKey).(string); ok {
		return v
	}
	return ""
}

// IsCurator reports whether the caller holds the curator role.
func IsCurator(r *http.Request) bool {
	return RoleFrom(r) == RoleCurator
}

// HasRole reports whether the caller satisfies the required role.
func HasRole(r *http.Request, required string) bool {
	role := RoleFrom(r)
	if role == required {
		return true
	}
	return required == RoleUser && role == RoleCurator
}

// ContextWithCaller returns a new context with the username and role.
func ContextWithCaller(ctx context.Context, username, role string) context.Context {
	ctx = context.WithValue(ctx, usernameKey, username)
	return context.WithValue(ctx, roleKey, role)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context with the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
