package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/username/tradejournal/backend/src/logger"
)

// RouterConfig holds what the router needs beyond the handlers themselves.
type RouterConfig struct {
	AllowedOrigins []string
	Limiter        *rate.Limiter
}

// NewRouter wires the API routes and the global middleware chain.
func NewRouter(cfg RouterConfig, imports *ImportHandler, trades *TradeHandler, stats *StatsHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "If-None-Match", UserHeader},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.Limiter != nil {
		r.Use(RateLimitMiddleware(cfg.Limiter))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Trade journal backend is running"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/sources", imports.HandleGetSources)

		r.Group(func(r chi.Router) {
			r.Use(UserMiddleware)

			r.Post("/import", imports.HandleImport)
			r.Post("/import/preview", imports.HandlePreview)

			r.Get("/trades", trades.HandleGetTrades)
			r.Delete("/trades", trades.HandleDeleteAllTrades)

			r.Get("/stats", stats.HandleGetStats)
			r.Get("/drawdown", stats.HandleGetDrawdown)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.L.Warn("Path not found", "method", r.Method, "path", r.URL.Path)
		http.NotFound(w, r)
	})
	return r
}
