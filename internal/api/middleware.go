package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/taskboard/internal/auth"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/service"
)

type contextKey int

const userContextKey contextKey = iota

// actorFrom returns the authenticated user's ID, or "" for anonymous requests.
func actorFrom(r *http.Request) string {
	if u, ok := r.Context().Value(userContextKey).(*domain.User); ok {
		return u.ID
	}
	return ""
}

// withAuth resolves the bearer token to a user and stores it in the request
// context. An unknown token is rejected; a missing one leaves the request
// anonymous, so read-only access stays open.
func withAuth(authSvc service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := auth.ParseAuthorizationHeader(r.Header.Get("Authorization"))
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		u, err := authSvc.Authenticate(r.Context(), key)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Invalid token.")
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging records one line per request: method, path, status, duration.
func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
