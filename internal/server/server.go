// Package server exposes the HTTP API: behavior record ingestion, the
// analytics surface (enhanced analytics, avatars, influence, topic bias,
// perception), and persona analysis.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mirrorme/mirrord/internal/config"
	"github.com/mirrorme/mirrord/internal/narrative"
	"github.com/mirrorme/mirrord/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	analysisCfg config.AnalysisConfig,
	store *storage.Store,
	generator *narrative.Generator,
) *Server {
	router := NewRouter(cfg, analysisCfg, store, generator)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// NewRouter builds the chi router with all middleware and routes mounted.
func NewRouter(
	cfg config.ServerConfig,
	analysisCfg config.AnalysisConfig,
	store *storage.Store,
	generator *narrative.Generator,
) *chi.Mux {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Create handler dependencies
	behaviorHandler := NewBehaviorHandler(store, analysisCfg.MaxBatchSize)
	analyticsHandler := NewAnalyticsHandler(store, generator, analysisCfg.DefaultWindowDays)
	personaHandler := NewPersonaHandler(store, generator, analysisCfg.DefaultWindowDays)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondWithJSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"service": "mirrord",
			})
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Behavior records API
			r.Route("/behavior", func(r chi.Router) {
				r.Post("/records", behaviorHandler.LogRecord)
				r.Post("/records/batch", behaviorHandler.LogBatch)
				r.Get("/records", behaviorHandler.ListRecords)
				r.Delete("/records", behaviorHandler.DeleteUserRecords)
				r.Put("/records/{id}/sensitivity", behaviorHandler.UpdateSensitivity)
				r.Put("/records/{id}/analysis", behaviorHandler.UpdateInclusion)
				r.Delete("/records/{id}", behaviorHandler.DeleteRecord)
			})

			// Analytics API
			r.Route("/analytics", func(r chi.Router) {
				r.Get("/enhanced", analyticsHandler.Enhanced)
				r.Get("/digital-avatars", analyticsHandler.DigitalAvatars)
				r.Get("/algorithm-influence", analyticsHandler.AlgorithmInfluence)
				r.Get("/topic-bias-detection", analyticsHandler.TopicBias)
				r.Get("/perception-analysis/{perceiver}", analyticsHandler.PerceptionAnalysis)
				r.Get("/perception-comparison", analyticsHandler.PerceptionComparison)
			})

			// Persona API
			r.Route("/persona", func(r chi.Router) {
				r.Post("/analyze", personaHandler.Analyze)
				r.Get("/insights", personaHandler.Insights)
			})
		})
	})

	return router
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
