package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aerosense/estimator/internal/airports"
	"aerosense/estimator/internal/api"
	"aerosense/estimator/internal/config"
	"aerosense/estimator/internal/logging"
	"aerosense/estimator/internal/metrics"
	"aerosense/estimator/internal/routes"
)

const (
	searchWorkers   = 2
	shutdownTimeout = 10 * time.Second
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Estimator starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, err := airports.LoadDefault()
	if err != nil {
		logging.Fatal("Failed to load airport directory", "error", err)
	}
	logging.Info("Airport directory loaded", "airports", dir.Len())

	metricsReg := metrics.NewMetricsRegistry()
	deps, err := api.InitDependencies(ctx, cfg, metricsReg, dir)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err)
	}
	fallbackFrom, fallbackTo := deps.Services.Locations.Defaults()
	logging.Info("Fallback airports for unresolved locations", "origin", fallbackFrom.Code, "destination", fallbackTo.Code)
	defer func() {
		if err := deps.Close(); err != nil {
			logging.Warn("Error closing dependencies", "error", err)
		}
	}()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		deps.Recorder.Start(workerCtx, searchWorkers)
	}()

	upSince := time.Now()
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           routes.RegisterRoutes(deps, upSince),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "address", cfg.HTTP.Address, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}

	stopWorkers()
	<-workersDone
}
