package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestWithCaller(username, role string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(ContextWithCaller(r.Context(), username, role))
}

func TestCallerContext(t *testing.T) {
	r := requestWithCaller("alice", RoleCurator)
	assert.Equal(t, "alice", UsernameFrom(r))
	assert.Equal(t, RoleCurator, RoleFrom(r))
	assert.True(t, IsCurator(r))
}

func TestCallerContext_Unauthenticated(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, UsernameFrom(r))
	assert.Empty(t, RoleFrom(r))
	assert.False(t, IsCurator(r))
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required string
		want     bool
	}{
		{"user satisfies user", RoleUser, RoleUser, true},
		{"curator satisfies curator", RoleCurator, RoleCurator, true},
		{"curator satisfies user", RoleCurator, RoleUser, true},
		{"user does not satisfy curator", RoleUser, RoleCurator, false},
		{"no role satisfies nothing", "", RoleUser, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasRole(requestWithCaller("x", tt.role), tt.required))
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestIDFrom(r))

	r = r.WithContext(ContextWithRequestID(r.Context(), "req-123"))
	assert.Equal(t, "req-123", RequestIDFrom(r))
}
