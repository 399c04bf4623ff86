// Package main is the entry point for the stock analysis API server.
// It wires configuration, logging, the market-data provider and the LLM
// client into one AnalysisService and serves it over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/llm"
	"github.com/hardikparikh99/Stock-Analysis/internal/provider"
	"github.com/hardikparikh99/Stock-Analysis/internal/server"
	"github.com/hardikparikh99/Stock-Analysis/internal/service"
)

func main() {
	// run() is separate so deferred cleanup executes before os.Exit.
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

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	// Sync commonly fails on stdout/stderr; that is not a real problem.
	defer func() { _ = logger.Sync() }()

	market, err := provider.New(cfg.Market, provider.NewHTTPClient(cfg.Market.Timeout))
	if err != nil {
		return fmt.Errorf("creating market provider: %w", err)
	}

	llmClient, err := llm.New(context.Background(), cfg.LLM, provider.NewHTTPClient(cfg.LLM.Timeout))
	if err != nil {
		return fmt.Errorf("creating llm client: %w", err)
	}

	logger.Info("analysis pipeline configured",
		zap.String("market_provider", market.Name()),
		zap.String("llm_provider", llmClient.ProviderName()),
		zap.String("llm_model", llmClient.ModelName()),
		zap.Int("head_rows", cfg.Analysis.HeadRows),
	)

	analysisService := service.NewAnalysisService(market, llmClient, cfg.Analysis, logger)
	srv := server.New(cfg, server.Deps{Analyzer: analysisService}, logger)

	// Graceful shutdown: listen for SIGINT (Ctrl+C) or SIGTERM (docker stop).
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

	// In-flight analyses may be waiting on a slow local model.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}

// newLogger returns JSON production logging unless level is "debug".
func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
