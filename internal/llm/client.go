// Package llm provides a provider-agnostic interface for single-shot text
// completions. The default backend is a locally hosted Ollama server; Gemini,
// OpenAI and Anthropic are drop-in substitutes selected by configuration.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
)

// ErrNoCompletion is returned when a provider answered successfully but the
// response carries no generated-text field.
var ErrNoCompletion = errors.New("no completion in response")

// StatusError reports a non-success answer from a provider.
// Body is the raw response body (or the SDK's raw error payload).
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s Error: %s", e.Provider, e.Body)
}

// Client is the interface for LLM providers.
// Keep it small: one method does the work, two describe the backend for logs.
type Client interface {
	// Complete sends prompt and returns the generated text of a single,
	// non-streamed completion.
	Complete(ctx context.Context, prompt string) (string, error)
	ProviderName() string
	ModelName() string
}

// New builds the client selected by cfg.Provider. httpClient is used by the
// providers that speak plain HTTP.
func New(ctx context.Context, cfg config.LLMConfig, httpClient *http.Client) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ollama", "":
		return NewOllamaClient(cfg.Ollama.BaseURL, cfg.Ollama.Model, httpClient), nil
	case "gemini", "google":
		if cfg.Gemini.APIKey == "" {
			return nil, errors.New("gemini: API key is not configured (set GOOGLE_API_KEY)")
		}
		return NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, httpClient)
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, errors.New("openai: API key is not configured (set OPENAI_API_KEY)")
		}
		return NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, httpClient), nil
	case "anthropic", "claude":
		if cfg.Anthropic.APIKey == "" {
			return nil, errors.New("anthropic: API key is not configured (set ANTHROPIC_API_KEY)")
		}
		return NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
