package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/supplyq/supplyq/internal/api"
	"github.com/supplyq/supplyq/internal/auth"
	"github.com/supplyq/supplyq/internal/config"
	"github.com/supplyq/supplyq/internal/observability"
	"github.com/supplyq/supplyq/internal/pipeline"
	"github.com/supplyq/supplyq/internal/store"
	"github.com/supplyq/supplyq/internal/translate"
)

func main() {
	cfg, err := config.LoadFromEnv("supplyq-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	db, err := store.Open(context.Background(), cfg.Store)
	if err != nil {
		logger.Error("failed to open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	snapshots := &store.SnapshotBuilder{
		DB:         db,
		Driver:     cfg.Store.Driver,
		Table:      store.TableName,
		SampleRows: cfg.Query.SampleRows,
	}

	var querier api.Querier
	if cfg.AI.TranslateEnabled {
		translator, err := translate.NewClient(translate.ClientConfig{
			BaseURL:     cfg.AI.BaseURL,
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			Timeout:     cfg.AI.Timeout,
		})
		if err != nil {
			logger.Error("failed to initialize query translator", slog.Any("error", err))
			os.Exit(1)
		}
		querier = pipeline.NewAgent(db, cfg.Store.Driver, cfg.Query.SampleRows, translator, logger)
	}

	deps := api.Dependencies{
		Logger:            logger,
		Readiness:         api.CheckStore(snapshots),
		DependencyTimeout: time.Second,
		Querier:           querier,
		Schema:            snapshots,
	}
	if cfg.Auth.Required {
		validator, err := auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys)
		if err != nil {
			logger.Error("failed to parse static auth keys", slog.Any("error", err))
			os.Exit(1)
		}
		deps.AuthMiddleware = auth.Middleware(logger, validator)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
