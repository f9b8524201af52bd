// Package api exposes the desk over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/keiba-desk/internal/config"
	"github.com/yourusername/keiba-desk/internal/health"
	"github.com/yourusername/keiba-desk/internal/metrics"
	"github.com/yourusername/keiba-desk/internal/service"
)

// Server is the HTTP API server
type Server struct {
	desk     *service.Desk
	health   *health.Handler
	validate *validator.Validate
	logger   *logrus.Logger
	router   chi.Router
	server   *http.Server
}

// NewServer builds the router and HTTP server
func NewServer(cfg *config.Config, desk *service.Desk, healthHandler *health.Handler, logger *logrus.Logger) *Server {
	s := &Server{
		desk:     desk,
		health:   healthHandler,
		validate: validator.New(),
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler.Routes(r)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/bet-types", s.listBetTypes)

		r.Post("/sessions", s.createSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Put("/race", s.setRaceMeta)

			r.Get("/entries", s.listEntries)
			r.Get("/scores", s.listScores)
			r.Get("/profiles", s.listProfiles)
			r.Get("/form", s.listForms)

			r.Put("/marks/{horse}", s.setMark)
			r.Put("/manual-scores/{horse}", s.setManualScore)
			r.Delete("/adjustments", s.clearAdjustments)

			r.Post("/allocations", s.allocate)
			r.Post("/simulations", s.simulate)
			r.Get("/simulations", s.listSimulations)
		})
		r.Get("/simulations/{purchaseID}", s.getSimulation)
	})

	s.router = r
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.WithField("addr", s.server.Addr).Info("API server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("API server shutting down")
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("HTTP request")
	})
}
