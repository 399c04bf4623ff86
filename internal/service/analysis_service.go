// Package service contains the core business logic of the analysis backend.
// AnalysisService runs one linear pipeline per request:
//
//	Step 1: Market data: fetch the symbol's full daily history
//	Step 2: Prompt: embed the most recent rows in the fixed analysis template
//	Step 3: LLM: request a single non-streamed completion
//
// Nothing is cached or retried; each call is independent.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/llm"
	"github.com/hardikparikh99/Stock-Analysis/internal/model"
	"github.com/hardikparikh99/Stock-Analysis/internal/provider"
)

const (
	// DefaultHeadRows is how many of the most recent bars go into the prompt.
	DefaultHeadRows = 5
	// DefaultPlaceholder is returned when the model response has no text field.
	DefaultPlaceholder = "No response from LLaMA."
)

// AnalysisService holds no per-request state, so one instance serves all
// concurrent requests.
type AnalysisService struct {
	market      provider.MarketDataProvider
	llmClient   llm.Client
	headRows    int
	placeholder string
	logger      *zap.Logger
}

// NewAnalysisService wires the market-data source and the LLM together.
func NewAnalysisService(
	market provider.MarketDataProvider,
	llmClient llm.Client,
	cfg config.AnalysisConfig,
	logger *zap.Logger,
) *AnalysisService {
	headRows := cfg.HeadRows
	if headRows <= 0 {
		headRows = DefaultHeadRows
	}
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &AnalysisService{
		market:      market,
		llmClient:   llmClient,
		headRows:    headRows,
		placeholder: placeholder,
		logger:      logger,
	}
}

// Analyze returns the model's analysis of symbol. Errors are always
// *AnalysisError: ErrClient when market data could not be fetched (the LLM
// is not called), ErrServer when the completion failed.
func (s *AnalysisService) Analyze(ctx context.Context, symbol string) (*model.AnalysisResult, error) {
	prompt, err := s.BuildHistoryPrompt(ctx, symbol)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.llmClient.Complete(ctx, prompt)
	duration := time.Since(start)

	switch {
	case errors.Is(err, llm.ErrNoCompletion):
		s.logger.Warn("completion missing from LLM response, using placeholder",
			zap.String("symbol", symbol),
			zap.String("provider", s.llmClient.ProviderName()),
			zap.String("model", s.llmClient.ModelName()),
			zap.Duration("duration", duration),
		)
		return &model.AnalysisResult{Analysis: s.placeholder}, nil
	case err != nil:
		s.logger.Error("LLM call failed",
			zap.String("symbol", symbol),
			zap.String("provider", s.llmClient.ProviderName()),
			zap.String("model", s.llmClient.ModelName()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, serverError(err.Error(), err)
	}

	s.logger.Info("analysis generated",
		zap.String("symbol", symbol),
		zap.String("provider", s.llmClient.ProviderName()),
		zap.String("model", s.llmClient.ModelName()),
		zap.Duration("duration", duration),
		zap.Int("chars", len(text)),
	)
	return &model.AnalysisResult{Analysis: text}, nil
}

// BuildHistoryPrompt runs the market-data and prompt steps only.
// The CLI uses it to show exactly what would be sent to the model.
func (s *AnalysisService) BuildHistoryPrompt(ctx context.Context, symbol string) (string, error) {
	start := time.Now()
	history, err := s.market.DailyHistory(ctx, symbol)
	if err == nil && len(history) == 0 {
		err = fmt.Errorf("no price history returned for %s", symbol)
	}
	if err != nil {
		s.logger.Warn("fetching stock data failed",
			zap.String("symbol", symbol),
			zap.String("provider", s.market.Name()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return "", clientError("Error fetching stock data: "+err.Error(), err)
	}

	s.logger.Info("fetched daily history",
		zap.String("symbol", symbol),
		zap.String("provider", s.market.Name()),
		zap.Int("rows", len(history)),
		zap.Duration("duration", time.Since(start)),
	)

	return BuildPrompt(symbol, model.Head(history, s.headRows)), nil
}
