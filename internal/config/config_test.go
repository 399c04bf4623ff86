package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Address())
	assert.Equal(t, "0.0.0.0:8501", cfg.Web.Address())
	assert.Equal(t, "http://localhost:8000", cfg.Web.BackendURL)
	assert.Equal(t, "alphavantage", cfg.Market.Provider)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Ollama.BaseURL)
	assert.Equal(t, "llama3.2:latest", cfg.LLM.Ollama.Model)
	assert.Equal(t, 5, cfg.Analysis.HeadRows)
	assert.Equal(t, "No response from LLaMA.", cfg.Analysis.Placeholder)
	assert.Equal(t, 5*time.Minute, cfg.LLM.Timeout)
	assert.Equal(t, []string{"http://localhost:8501"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PrefixedEnvOverrides(t *testing.T) {
	t.Setenv("STOCK_SERVER_PORT", "9000")
	t.Setenv("STOCK_LLM_PROVIDER", "anthropic")
	t.Setenv("STOCK_MARKET_TIMEOUT", "45s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.Market.Timeout)
}

func TestLoad_PlainEnvNames(t *testing.T) {
	t.Setenv("ALPHA_VANTAGE_API_KEY", "av-key")
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("OLLAMA_HOST", "10.0.0.5:11434")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "av-key", cfg.Market.AlphaVantage.APIKey)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "10.0.0.5:11434", cfg.LLM.Ollama.BaseURL)
}

func TestLoad_PrefixedEnvWinsOverPlainName(t *testing.T) {
	t.Setenv("ALPHA_VANTAGE_API_KEY", "plain")
	t.Setenv("STOCK_MARKET_ALPHAVANTAGE_API_KEY", "prefixed")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.Market.AlphaVantage.APIKey)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
market:
  provider: yahoo
llm:
  provider: openai
  openai:
    model: gpt-4o-mini
analysis:
  head_rows: 10
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.Market.Provider)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 10, cfg.Analysis.HeadRows)
	// Untouched sections keep their defaults.
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveHeadRows(t *testing.T) {
	t.Setenv("STOCK_ANALYSIS_HEAD_ROWS", "0")

	_, err := Load("")
	assert.ErrorContains(t, err, "head_rows")
}
