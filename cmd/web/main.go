// Package main is the entry point for the browser-facing analysis form.
// It renders the form and forwards each submission to the analysis API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/frontend"
	"github.com/hardikparikh99/Stock-Analysis/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("STOCK_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var logger *zap.Logger
	if cfg.Log.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	backend := frontend.NewClient(cfg.Web.BackendURL, &http.Client{Timeout: cfg.Web.Timeout})

	srv, err := server.NewWeb(cfg, backend, logger)
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}
	logger.Info("web form configured", zap.String("backend_url", cfg.Web.BackendURL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
