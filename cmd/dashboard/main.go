// Package main runs the sentiment dashboard: an HTTP server that renders
// the views and proxies the remote prediction API with caching and
// circuit breaking.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sentiment-dashboard/config"
	"sentiment-dashboard/internal/api"
	"sentiment-dashboard/internal/app"
	"sentiment-dashboard/internal/session"
	"sentiment-dashboard/observability"
	"sentiment-dashboard/services"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.Production)
	observability.InitMetrics()

	// Shared upstream client; per-session overrides clone it with a
	// different base URL but keep the same HTTP clients and cache.
	client := services.NewPredictionAPIService(cfg.API.BaseURL)
	factory := services.ClientFactory(func(baseURL string) services.PredictionAPIInterface {
		return client.WithBaseURL(baseURL)
	})

	sessions := session.NewRegistry()
	application := app.New(cfg, client, factory, sessions)

	// Warm the health gate so the first page load shows a real status.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	if _, ok := application.CheckHealth(startupCtx, nil); !ok {
		observability.Warn("prediction API unreachable at startup", "base_url", cfg.API.BaseURL)
	}
	cancelStartup()

	// Background cache refresh, off the request path.
	var scheduler *cron.Cron
	if cfg.Refresh.Enabled {
		scheduler = cron.New()
		spec := fmt.Sprintf("@every %ds", cfg.Refresh.IntervalSeconds)
		if _, err := scheduler.AddFunc(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second)
			defer cancel()
			application.RefreshWarmSymbols(ctx)
		}); err != nil {
			observability.Fatal("failed to schedule auto refresh", "error", err)
		}
		scheduler.Start()
		observability.Info("auto refresh enabled",
			"interval_seconds", cfg.Refresh.IntervalSeconds,
			"symbols", cfg.Refresh.WarmSymbols)
	}

	handler := api.NewHandler(application, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		observability.Info("starting dashboard server",
			"port", cfg.HTTP.Port,
			"api_base_url", cfg.API.BaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("shutting down dashboard server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Fatal("server forced to shutdown", "error", err)
	}

	observability.Info("dashboard server stopped")
}
