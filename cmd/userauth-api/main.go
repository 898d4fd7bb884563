package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/userauth-dev/userauth/internal/config"
	"github.com/userauth-dev/userauth/internal/logger"
	"github.com/userauth-dev/userauth/internal/router"
	"github.com/userauth-dev/userauth/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Storage.Cleanup(context.Background()); err != nil {
			logger.Log.Error("failed to close storage", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Public.Addr,
		Handler: router.New(deps),
	}

	go func() {
		logger.Log.Info("server started", "addr", cfg.Public.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", "error", err)
	}
	logger.Log.Info("server stopped")
}
