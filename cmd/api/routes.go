package main

import (
	"context"
	"net/http"
	"time"

	"lendingapi/internal/auth"
	"lendingapi/internal/book"
	"lendingapi/internal/cover"
	"lendingapi/internal/httpx"
)

type routerDeps struct {
	books     *book.HTTPHandler
	covers    *cover.HTTPHandler
	login     *auth.HTTPHandler
	parse     httpx.TokenParser
	pingDB    func(ctx context.Context) error
	rateLimit *httpx.RateLimitMiddleware
}

// newRouter assembles the full HTTP surface: public login and health
// endpoints, and the /api/books resources behind auth with per-route role
// requirements.
func newRouter(d routerDeps) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.pingDB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := d.pingDB(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /api/login", d.login.Login)

	authed := httpx.AuthMiddleware(d.parse)
	asUser := func(h http.HandlerFunc) http.Handler {
		return authed(httpx.RequireRole(httpx.RoleUser)(h))
	}
	asCurator := func(h http.HandlerFunc) http.Handler {
		return authed(httpx.RequireRole(httpx.RoleCurator)(h))
	}

	router.Handle("POST /api/books", asCurator(d.books.Add))
	router.Handle("GET /api/books/{id}", asUser(d.books.GetByID))
	router.Handle("POST /api/books/{id}/borrow", asUser(d.books.Borrow))
	router.Handle("POST /api/books/{id}/return", asUser(d.books.Return))
	router.Handle("DELETE /api/books/{id}", asCurator(d.books.Delete))
	router.Handle("GET /api/books/{id}/cover", asUser(d.covers.Get))
	router.Handle("PUT /api/books/{id}/cover", asCurator(d.covers.Put))

	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(maxRequestBytes)(handler)
	if d.rateLimit != nil {
		handler = d.rateLimit.Middleware(handler)
	}
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)
	return handler
}

const maxRequestBytes = 12 << 20 // covers are uploaded through this limit
