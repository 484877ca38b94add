package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"gamelibrary/internal/app"
	"gamelibrary/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

const sessionCookie = "session"

// currentUser returns the authenticated user, or nil.
func currentUser(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userContextKey).(*domain.User)
	return u
}

// requestToken reads the session cookie, falling back to a Bearer header.
func requestToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// authMiddleware attaches the user identified by the request's token. Requests
// without a valid token pass through anonymously.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := requestToken(r)
		if token == "" || s.svc.Auth == nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.svc.Auth.ValidateToken(r.Context(), token)
		if err != nil {
			if !errors.Is(err, app.ErrInvalidToken) && !errors.Is(err, app.ErrUnknownUser) {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser rejects anonymous requests.
func (s *Server) requireUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) == nil {
			writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		next(w, r)
	})
}

// requestScopeMiddleware binds a storage session to the request and releases
// it when the handler returns.
func (s *Server) requestScopeMiddleware(next http.Handler) http.Handler {
	if s.scoper == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := s.scoper.BeginRequestScope(r.Context())
		if err != nil {
			s.logger.Error("begin request scope", "error", err)
			writeError(w, http.StatusServiceUnavailable, errors.New("storage unavailable"))
			return
		}
		defer func() {
			if err := s.scoper.EndRequestScope(ctx); err != nil {
				s.logger.Warn("end request scope", "error", err)
			}
		}()
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

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
