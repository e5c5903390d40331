package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RouterConfig wires handlers and middleware into the mux.
type RouterConfig struct {
	Handlers       *Handlers
	Stream         http.HandlerFunc // nil disables /api/v1/stream
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter builds the HTTP routing table.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(recovery(logger))
	r.Use(requestID)
	r.Use(logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", cfg.Handlers.Health)
	r.Get("/api/status", cfg.Handlers.Status)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", cfg.Handlers.Health)

		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Get("/prices", cfg.Handlers.GamePrices)
			r.Get("/history", cfg.Handlers.GameHistory)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", cfg.Handlers.Categories)
			r.Get("/sources", cfg.Handlers.Sources)
		})

		r.Route("/tracks", func(r chi.Router) {
			r.Post("/", cfg.Handlers.CreateTrack)
			r.Get("/", cfg.Handlers.ListTracks)
			r.Get("/{trackID}", cfg.Handlers.GetTrack)
			r.Delete("/{trackID}", cfg.Handlers.DeleteTrack)
		})

		if cfg.Stream != nil {
			r.Get("/stream", cfg.Stream)
		}
	})

	return r
}
