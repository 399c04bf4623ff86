// Package main provides the command-line front end for the stock analysis API.
// Uses Cobra for command parsing.
//
// Run with: go run ./cmd/cli analyze aapl
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/frontend"
	"github.com/hardikparikh99/Stock-Analysis/internal/provider"
	"github.com/hardikparikh99/Stock-Analysis/internal/service"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootCmd creates the command tree:
// stock-cli analyze AAPL
// stock-cli prompt AAPL
// stock-cli version
func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "stock-cli",
		Short:        "Stock analysis CLI tools",
		SilenceUsage: true,
	}

	root.AddCommand(analyzeCmd())
	root.AddCommand(promptCmd())
	root.AddCommand(versionCmd())
	return root
}

func analyzeCmd() *cobra.Command {
	var backendURL string

	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Request an analysis from the running API and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(os.Getenv("STOCK_CONFIG_PATH"))
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if backendURL == "" {
				backendURL = cfg.Web.BackendURL
			}
			client := frontend.NewClient(backendURL, &http.Client{Timeout: cfg.Web.Timeout})

			ctx, cancel := signalContext()
			defer cancel()
			return runAnalyze(ctx, client, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend", "", "Analysis API base URL (default from web.backend_url)")
	return cmd
}

func runAnalyze(ctx context.Context, client *frontend.Client, symbol string, out io.Writer) error {
	symbol = strings.ToUpper(symbol)
	if symbol == "" {
		return errors.New("please enter a stock symbol")
	}

	result, err := client.Analyze(ctx, symbol)
	if err != nil {
		// Cobra prefixes the message with "Error: ".
		var be *frontend.BackendError
		if errors.As(err, &be) {
			return be
		}
		return fmt.Errorf("an error occurred: %w", err)
	}

	fmt.Fprintf(out, "## Analysis Results\n\n%s\n", result.Analysis)
	return nil
}

func promptCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "prompt SYMBOL",
		Short: "Fetch market data and print the prompt that would be sent to the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(os.Getenv("STOCK_CONFIG_PATH"))
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if source != "" {
				cfg.Market.Provider = source
			}

			// Always use development mode for CLI
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			market, err := provider.New(cfg.Market, provider.NewHTTPClient(cfg.Market.Timeout))
			if err != nil {
				return err
			}

			// No LLM client: BuildHistoryPrompt stops before the completion step.
			svc := service.NewAnalysisService(market, nil, cfg.Analysis, logger)

			ctx, cancel := signalContext()
			defer cancel()

			prompt, err := svc.BuildHistoryPrompt(ctx, strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Market data provider: alphavantage, twelvedata, yahoo")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "stock-cli", version)
		},
	}
}

// signalContext is cancelled on Ctrl+C so a long wait can be abandoned.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
