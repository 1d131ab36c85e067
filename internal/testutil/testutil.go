package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"lendingapi/internal/auth"
)

// Secret is the JWT secret used across handler and routing tests.
const Secret = "test-secret"

// UserToken returns a token for a plain user.
func UserToken() string {
	token, _ := auth.GenerateToken(Secret, "reader", "USER", time.Hour)
	return token
}

// CuratorToken returns a token for a curator.
func CuratorToken() string {
	token, _ := auth.GenerateToken(Secret, "librarian", "CURATOR", time.Hour)
	return token
}

// NewRequest creates an HTTP request with a JSON body for testing.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth creates an HTTP request with a Bearer token.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// DecodeBody parses a recorded JSON response body into a generic map.
func DecodeBody(w *httptest.ResponseRecorder) map[string]interface{} {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}
	return bodyMap
}
