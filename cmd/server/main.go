package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightmatter/competitor-email-api/internal/api"
	"github.com/brightmatter/competitor-email-api/internal/config"
	"github.com/brightmatter/competitor-email-api/internal/core"
	"github.com/brightmatter/competitor-email-api/internal/logger"
	"github.com/brightmatter/competitor-email-api/internal/store"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zl.Sync() }()

	if cfg.Development() {
		zl.Info("service starting in development mode")
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	intelligenceStore, err := store.NewStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase, zl)
	cancelConnect()
	if err != nil {
		zl.Fatal("failed to initialize intelligence store", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := intelligenceStore.Close(ctx); err != nil {
			zl.Warn("failed to disconnect intelligence store", zap.Error(err))
		}
	}()

	generationClient := core.NewGenerationClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	emailService := core.NewEmailService(generationClient, zl)

	handler := api.NewHandler(intelligenceStore, emailService, zl, cfg.Development())
	router := api.NewRouter(handler, cfg.MaxBodyBytes)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // two sequential LLM calls can take a while
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zl.Info("starting server", zap.String("addr", srv.Addr), zap.String("model", cfg.OpenRouterModel))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Fatal("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}
