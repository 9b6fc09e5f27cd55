package api

import (
	"net/http"
	"time"

	"sentiment-dashboard/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures a chi router with all routes.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second))
	r.Use(corsMiddleware(cfg.HTTP.CORSAllowedOrigins))
	r.Use(MetricsMiddleware)

	// Root routes
	r.Get("/", h.handleIndex)
	r.Get("/index.html", h.handleIndex)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Health
		r.Get("/health", h.handleHealth)
		r.Post("/health/refresh", h.handleHealthRefresh)

		// Views and session config
		r.Get("/views", h.handleGetViews)
		r.Post("/views/select", h.handleSelectView)
		r.Post("/config/base-url", h.handleSetBaseURL)

		// Predictions
		r.Get("/predict/{symbol}", h.handlePredict)
		r.Post("/predict/compare", h.handleCompare)

		// Stock data
		r.Get("/stock/{symbol}", h.handleStockInfo)
		r.Get("/stock/{symbol}/indicators", h.handleIndicators)
		r.Get("/stock/{symbol}/history", h.handleHistory)

		// Reddit sentiment
		r.Route("/reddit", func(r chi.Router) {
			r.Get("/sentiment/{symbol}", h.handleRedditSentiment)
			r.Get("/sentiment/{symbol}/comprehensive", h.handleComprehensiveSentiment)
			r.Get("/posts/{symbol}", h.handleRedditPosts)
			r.Get("/subreddits", h.handleSubreddits)
		})

		// Text analysis
		r.Post("/analyze-text", h.handleAnalyzeText)

		// System info
		r.Get("/model-info", h.handleModelInfo)
		r.Get("/system-info", h.handleSystemInfo)
	})

	return r
}
