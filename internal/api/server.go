// Package api provides the HTTP API server and handlers for the
// MangaPortal application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mangaportal/mangaportal-server/internal/domain"
	"github.com/mangaportal/mangaportal-server/internal/sse"
	"github.com/mangaportal/mangaportal-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	sseManager      *sse.Manager
	sseHandler      *sse.Handler
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, sseManager *sse.Manager, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(authMiddleware(services.Session))

	config := huma.DefaultConfig("MangaPortal API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	config.Transformers = append(config.Transformers, EnvelopeTransformer)

	api := humachi.New(router, config)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		sseManager:      sseManager,
		router:          router,
		api:             api,
		logger:          logger,
		authRateLimiter: NewRateLimiter(20, time.Minute, 10),
	}
	s.sseHandler = sse.NewHandler(sseManager, s.favoritesKeyFor, logger)

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerCatalogRoutes()
	s.registerFavoritesRoutes()
	s.registerProfileRoutes()

	// The event stream bypasses huma: SSE needs a long-lived raw
	// http.Handler, not a request/response operation.
	router.Method(http.MethodGet, "/api/v1/events", s.sseHandler)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// favoritesKeyFor derives the favorites key that scopes SSE delivery
// for an incoming stream request. Anonymous clients share the global
// scope; signed-in clients get their own.
func (s *Server) favoritesKeyFor(r *http.Request) string {
	return domain.FavoritesKey(IdentityFromContext(r.Context()))
}
