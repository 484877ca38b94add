// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"log/slog"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"gamelibrary/internal/app"
	"gamelibrary/internal/domain"
)

// Services are the application services the HTTP adapter drives.
type Services struct {
	Browse   *app.BrowseService
	Genres   *app.GenreService
	Reviews  *app.ReviewService
	Wishlist *app.WishlistService
	Profiles *app.ProfileService
	Auth     *app.AuthService
}

// OIDCConfig enables single sign-on through an OpenID Connect provider.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc        Services
	oidcConfig OIDCConfig
	scoper     domain.RequestScoper
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithRequestScope binds a storage session to every request.
func WithRequestScope(scoper domain.RequestScoper) Option {
	return func(s *Server) { s.scoper = scoper }
}

// WithOIDC enables the single sign-on endpoints.
func WithOIDC(cfg OIDCConfig) Option {
	return func(s *Server) { s.oidcConfig = cfg }
}

// WithLogger sets the access and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server wired to the given application services.
func New(svc Services, opts ...Option) *Server {
	s := &Server{svc: svc, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("GET /config", s.handleConfig)

	api.HandleFunc("GET /games", s.handleGames)
	api.HandleFunc("GET /games/{id}", s.handleGame)
	api.Handle("POST /games/{id}/reviews", s.requireUser(s.handleAddReview))
	api.HandleFunc("GET /search", s.handleSearch)

	api.HandleFunc("GET /genres", s.handleGenres)
	api.HandleFunc("GET /genres/{genre}", s.handleGenreGames)

	api.Handle("GET /wishlist", s.requireUser(s.handleWishlist))
	api.Handle("POST /wishlist/{id}", s.requireUser(s.handleWishlistAdd))
	api.Handle("DELETE /wishlist/{id}", s.requireUser(s.handleWishlistRemove))

	api.HandleFunc("GET /profile/{username}", s.handleProfile)

	api.HandleFunc("POST /auth/register", s.handleRegister)
	api.HandleFunc("POST /auth/login", s.handleLogin)
	api.HandleFunc("POST /auth/logout", s.handleLogout)
	api.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return withNoCache(s.loggingMiddleware(s.requestScopeMiddleware(s.authMiddleware(root))))
}
