package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"audimew-storefront/config"
	"audimew-storefront/internal/db"
	"audimew-storefront/internal/devapi"
	"audimew-storefront/internal/logger"
	"audimew-storefront/internal/mirror"
	"audimew-storefront/internal/remote"
	"audimew-storefront/internal/store"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	gormDB, err := db.Init(&cfg.Database, zl.Named("db"))
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB, zl.Named("store"))
	if err := appStore.Migrate(ctx); err != nil {
		zl.Fatal("failed to migrate database", zap.Error(err))
	}
	if cfg.DevAPI.Seed {
		if err := store.Seed(ctx, appStore, time.Now()); err != nil {
			zl.Fatal("failed to seed database", zap.Error(err))
		}
		zl.Info("demo catalog seeded")
	}

	if src := cfg.DevAPI.Mirror.SourceURL; src != "" {
		rc := cfg.Remote
		rc.BaseURL = src
		mirrorSvc := mirror.NewService(cfg.DevAPI.Mirror, remote.NewClient(rc, zl.Named("mirror.remote")), appStore, zl.Named("mirror"))
		go mirrorSvc.Run(ctx)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.DevAPI.Port),
		Handler: devapi.NewRouter(appStore, zl),
	}

	go func() {
		zl.Info("stub storefront API starting", zap.Int("port", cfg.DevAPI.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	zl.Info("shutdown signal received, stopping services")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("HTTP server Shutdown", zap.Error(err))
	}

	zl.Info("server gracefully stopped")
}
