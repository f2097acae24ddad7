package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config holds server configuration
type Config struct {
	Port           int
	APIToken       string
	AllowedOrigins []string
	Log            zerolog.Logger
	Handler        *Handler
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
}

// New creates a new HTTP server with all routes registered
func New(cfg Config) *Server {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(RequestLogger(cfg.Log))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(api chi.Router) {
		api.Use(RequireToken(cfg.APIToken))

		api.Get("/portfolios", cfg.Handler.HandleListPortfolios)
		api.Post("/portfolios", cfg.Handler.HandleCreatePortfolio)
		api.Get("/portfolios/{id}/metrics", cfg.Handler.HandlePortfolioMetrics)
		api.Get("/portfolios/{id}/summary", cfg.Handler.HandlePortfolioSummary)
		api.Get("/portfolios/{id}/report", cfg.Handler.HandlePortfolioReport)
		api.Post("/metrics/preview", cfg.Handler.HandleMetricsPreview)
		api.Get("/rates", cfg.Handler.HandleRates)
		api.Get("/assets", cfg.Handler.HandleListAssets)
		api.Post("/assets", cfg.Handler.HandleCreateAsset)
	})

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		log: cfg.Log.With().Str("component", "http").Logger(),
	}
}

// Router exposes the chi mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
