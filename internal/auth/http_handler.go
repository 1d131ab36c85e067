package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"lendingapi/internal/httpx"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type HTTPHandler struct {
	users     *UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewHTTPHandler(users *UserStore, jwtSecret string, tokenTTL time.Duration) *HTTPHandler {
	return &HTTPHandler{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login handles POST /api/login
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return
	}

	user, ok := h.users.Authenticate(req.Username, req.Password)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials", nil)
		return
	}

	token, err := GenerateToken(h.jwtSecret, user.Username, user.Role, h.tokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, LoginResponse{Token: token})
}
