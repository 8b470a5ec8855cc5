// Package server provides the HTTP server for the recommendation API
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/smartdine/v2/internal/infrastructure/config"
	"github.com/smartdine/v2/internal/infrastructure/http/handlers"
	"github.com/smartdine/v2/internal/infrastructure/http/middleware"
)

// Server wraps the chi router and the underlying http.Server.
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new HTTP server instance.
func NewServer(cfg *config.Config, api *handlers.API, logger *zap.Logger) *Server {
	s := &Server{
		config: cfg,
		logger: logger.Named("server"),
	}

	s.router = s.setupRouter(api)
	s.server = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

func (s *Server) setupRouter(api *handlers.API) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", api.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommendations", api.Recommend)
		r.Get("/halls", api.Halls)
		r.Get("/menus", api.Menus)
	})

	return r
}

// Start begins listening. It blocks until the listener fails or Stop is
// called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server stopping")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
