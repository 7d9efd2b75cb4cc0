package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"depin-monitor/config"
	"depin-monitor/dashboard"
	"depin-monitor/db"
	"depin-monitor/handlers"
	"depin-monitor/logger"
	"depin-monitor/metrics"
	"depin-monitor/mockdata"
	"depin-monitor/repository"
	"depin-monitor/routers"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("Config file error:", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg.Log.AppLogFile, cfg.Log.Level); err != nil {
		fmt.Println("Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Logger.Sync()

	logger.Logger.Info("Starting DePIN monitor...")

	// In-memory store, rebuilt from mock data on every start
	ldb, err := db.NewMemLevelDB()
	if err != nil {
		logger.Logger.Fatal("Failed to open leveldb", zap.Error(err))
	}
	defer ldb.Close()

	repo := repository.NewRepository(ldb)
	if err := mockdata.Seed(repo, time.Now()); err != nil {
		logger.Logger.Fatal("Failed to seed mock data", zap.Error(err))
	}

	reg := metrics.NewRegistry()

	svc := dashboard.NewService(repo, time.Now, dashboard.Options{
		Thresholds:  cfg.Health.Thresholds,
		NearbyLimit: cfg.Dashboard.NearbyLimit,
		USDRate:     cfg.Dashboard.USDRate,
		MapCenter:   cfg.Map.DefaultCenter,
		Metrics:     reg,
	})

	// Initialize HTTP handlers
	h := handlers.NewHandler(svc)

	// Setup router
	r := mux.NewRouter()
	routers.RegisterRoutes(r, h, reg)

	// HTTP Server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("Server stopped", zap.Error(err))
		}
	}()

	logger.Logger.Info("Server running on port", zap.Int("port", cfg.Server.Port))

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Logger.Info("Shutdown signal received, exiting...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Warn("Graceful shutdown failed", zap.Error(err))
	}
}
