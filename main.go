package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	appLogger "github.com/FACorreiaa/wanderspark-api/app/logger"
	appMiddleware "github.com/FACorreiaa/wanderspark-api/app/middleware"
	"github.com/FACorreiaa/wanderspark-api/app/tracer"
	"github.com/FACorreiaa/wanderspark-api/config"
	_ "github.com/FACorreiaa/wanderspark-api/docs"
	"github.com/FACorreiaa/wanderspark-api/internal/container"
	"github.com/FACorreiaa/wanderspark-api/internal/router"
)

// @title           WanderSpark API
// @version         1.0
// @description     AI generated itineraries, travel and stay suggestions, and packing lists.
// @BasePath        /api/v1
func main() {
	// .env carries the Gemini API key in development
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	providers, err := tracer.InitTracingAndMetrics(cfg.Observability.ServiceName)
	if err != nil {
		logger.Error("Failed to initialize observability", slog.Any("error", err))
		os.Exit(1)
	}

	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	go c.RateLimiter.Cleanup(ctx, time.Minute)

	routerCfg := &router.Config{
		SuggestionsHandler: c.SuggestionsHandler,
		ItineraryHandler:   c.ItineraryHandler,
		PackingHandler:     c.PackingHandler,
		RateLimit:          c.RateLimiter.Limit,
	}
	var metricsSrv *http.Server
	if port := cfg.Observability.MetricsPort; port != "" {
		metricsSrv = newMetricsServer(port, tracer.MetricsHandler())
		go func() {
			logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server ListenAndServe error", slog.Any("error", err))
			}
		}()
	} else {
		routerCfg.MetricsHandler = tracer.MetricsHandler()
	}
	apiRouter := router.SetupRouter(routerCfg)

	timeout := cfg.Server.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      newHTTPHandler(logger, apiRouter, timeout),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server graceful shutdown failed", slog.Any("error", err))
		}
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		logger.Error("Observability shutdown failed", slog.Any("error", err))
	}
	logger.Info("Application shut down complete")
}

// newHTTPHandler wraps the API routes in the server-wide middleware chain.
func newHTTPHandler(logger *slog.Logger, apiRouter chi.Router, timeout time.Duration) http.Handler {
	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(appMiddleware.CapturePeer)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(timeout))
	r.Mount("/", apiRouter)
	return r
}

// newMetricsServer serves only /metrics, so scrapes stay off the API listener.
func newMetricsServer(port string, metrics http.Handler) *http.Server {
	r := chi.NewMux()
	r.Handle("/metrics", metrics)
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func setupLogger(mode string) *slog.Logger {
	if mode == "" || mode == "development" {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
