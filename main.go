package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/tradejournal/backend/src/config"
	"github.com/username/tradejournal/backend/src/database"
	"github.com/username/tradejournal/backend/src/handlers"
	"github.com/username/tradejournal/backend/src/logger"
	"github.com/username/tradejournal/backend/src/models"
	"github.com/username/tradejournal/backend/src/parsers"
	"github.com/username/tradejournal/backend/src/processors"
	"github.com/username/tradejournal/backend/src/services"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Trade journal backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Loading vendor profiles...", "overrides", config.Cfg.ProfileOverridesPath)
	overrides, err := parsers.LoadOverrides(config.Cfg.ProfileOverridesPath)
	if err != nil {
		logger.L.Error("Failed to load header alias overrides", "error", err)
		os.Exit(1)
	}
	registry, err := parsers.NewRegistry(overrides)
	if err != nil {
		logger.L.Error("Invalid vendor profile configuration", "error", err)
		os.Exit(1)
	}

	logger.L.Info("Initializing report cache...")
	reportCache := cache.New(config.Cfg.StatsCacheTTL, services.CacheCleanupInterval)

	logger.L.Info("Initializing services and handlers...")
	importService := services.NewImportService(
		database.DB,
		registry,
		processors.NewTradeProcessor(),
		processors.NewStatsProcessor(),
		processors.NewDrawdownProcessor(),
		reportCache,
		config.Cfg.StatsCacheTTL,
	)

	importHandler := handlers.NewImportHandler(importService, config.Cfg.MaxUploadSizeBytes)
	tradeHandler := handlers.NewTradeHandler(importService)
	statsHandler := handlers.NewStatsHandler(importService, models.DrawdownConfig{
		AccountSize:        config.Cfg.PropAccountSize,
		DailyLossPercent:   config.Cfg.PropDailyLossPercent,
		MaxDrawdownPercent: config.Cfg.PropMaxDrawdownPercent,
	})

	logger.L.Info("Configuring routes...")
	router := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: config.Cfg.AllowedOrigins,
		Limiter:        rate.NewLimiter(rate.Every(config.Cfg.RateLimitInterval), config.Cfg.RateLimitBurst),
	}, importHandler, tradeHandler, statsHandler)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L.Info("Server starting", "address", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Error("Failed to start server", "error", err)
			stdlog.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.L.Error("Server forced to shutdown", "error", err)
	}
	if err := database.DB.Close(); err != nil {
		logger.L.Error("Failed to close database", "error", err)
	}
	logger.L.Info("Server stopped gracefully.")
}
