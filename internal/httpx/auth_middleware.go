package httpx

import (
	"net/http"
	"strings"
)

// TokenParser validates a bearer token and returns the caller's username and
// role. Decoupled as a function type so this package stays independent of the
// token implementation.
type TokenParser func(token string) (username, role string, err error)

// AuthMiddleware authenticates the caller from a Bearer token and stores the
// username and role in the request context.
func AuthMiddleware(parse TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or malformed Authorization header", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			username, role, err := parse(token)
			if err != nil {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token", nil)
				return
			}

			ctx := ContextWithCaller(r.Context(), username, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers that do not satisfy the required role. Must run
// after AuthMiddleware.
func RequireRole(required string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasRole(r, required) {
				JSONError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient role", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
