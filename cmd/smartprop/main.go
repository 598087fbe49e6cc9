package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/smartprop/internal/config"
	dbRedis "github.com/kailas-cloud/smartprop/internal/db/redis"
	logpkg "github.com/kailas-cloud/smartprop/internal/logger"
	"github.com/kailas-cloud/smartprop/internal/metrics"
	propertyrepo "github.com/kailas-cloud/smartprop/internal/repository/property"
	userrepo "github.com/kailas-cloud/smartprop/internal/repository/user"
	chiTransport "github.com/kailas-cloud/smartprop/internal/transport/chi"
	"github.com/kailas-cloud/smartprop/internal/version"
	healthuc "github.com/kailas-cloud/smartprop/internal/usecase/health"
	propertyuc "github.com/kailas-cloud/smartprop/internal/usecase/property"
	searchuc "github.com/kailas-cloud/smartprop/internal/usecase/search"
	useruc "github.com/kailas-cloud/smartprop/internal/usecase/user"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting smartprop API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Redis and Valkey share the same core command set.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	weights := searchuc.Weights{
		Structural: cfg.Search.StructuralWeight,
		Keyword:    cfg.Search.KeywordWeight,
	}
	if err := weights.Validate(); err != nil {
		logger.Fatal("Invalid search weights", zap.Error(err))
	}

	userRepo := userrepo.New(store, cfg.Storage.KeyPrefix, logger)
	propRepo := propertyrepo.New(store, cfg.Storage.KeyPrefix, logger)

	userSvc := useruc.New(userRepo)
	propSvc := propertyuc.New(propRepo)
	searchSvc := searchuc.New(propRepo).
		WithWeights(weights).
		WithMaxResults(cfg.Search.MaxResults)
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(userSvc, propSvc, searchSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
