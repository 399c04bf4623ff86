// Package config handles application configuration using Viper.
// Viper supports YAML files, environment variables, and defaults, merged in priority order.
// Both binaries (the analysis API and the web form) load the same struct and
// read only the sections they need.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration struct. Nested structs organize related settings.
// `mapstructure` tags tell Viper how to map YAML/env keys to struct fields.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Web      WebConfig      `mapstructure:"web"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Market   MarketConfig   `mapstructure:"market"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// WebConfig configures the browser-facing form and where it finds the API.
type WebConfig struct {
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	BackendURL string        `mapstructure:"backend_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type MarketConfig struct {
	// Provider selects the market-data source: alphavantage, twelvedata or yahoo.
	Provider     string             `mapstructure:"provider"`
	Timeout      time.Duration      `mapstructure:"timeout"`
	AlphaVantage AlphaVantageConfig `mapstructure:"alphavantage"`
	TwelveData   TwelveDataConfig   `mapstructure:"twelvedata"`
	Yahoo        YahooConfig        `mapstructure:"yahoo"`
}

type AlphaVantageConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type TwelveDataConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	OutputSize int    `mapstructure:"output_size"`
}

type YahooConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Range   string `mapstructure:"range"`
}

type LLMConfig struct {
	// Provider selects the completion backend: ollama, gemini, openai or anthropic.
	Provider  string          `mapstructure:"provider"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type AnthropicConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int64  `mapstructure:"max_tokens"`
}

// AnalysisConfig tunes how the prompt is built and what is returned
// when the model produces nothing.
type AnalysisConfig struct {
	HeadRows    int    `mapstructure:"head_rows"`
	Placeholder string `mapstructure:"placeholder"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// legacyEnv maps config keys to the plain variable names a .env file for
// this project usually carries. They are checked after the STOCK_ prefixed form.
var legacyEnv = map[string]string{
	"market.alphavantage.api_key": "ALPHA_VANTAGE_API_KEY",
	"market.twelvedata.api_key":   "TWELVE_DATA_API_KEY",
	"llm.gemini.api_key":          "GOOGLE_API_KEY",
	"llm.openai.api_key":          "OPENAI_API_KEY",
	"llm.anthropic.api_key":       "ANTHROPIC_API_KEY",
	"llm.ollama.base_url":         "OLLAMA_HOST",
}

// Load reads configuration from a .env file, a YAML file and environment variables.
// Values already present in the process environment win over the .env file.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	// Set defaults; these apply when neither file nor env provides a value
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", 8501)
	v.SetDefault("web.backend_url", "http://localhost:8000")
	v.SetDefault("web.timeout", 5*time.Minute)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:8501"})
	v.SetDefault("market.provider", "alphavantage")
	v.SetDefault("market.timeout", 30*time.Second)
	v.SetDefault("market.alphavantage.base_url", "https://www.alphavantage.co")
	v.SetDefault("market.twelvedata.base_url", "https://api.twelvedata.com")
	v.SetDefault("market.twelvedata.output_size", 5000)
	v.SetDefault("market.yahoo.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("market.yahoo.range", "1mo")
	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.timeout", 5*time.Minute)
	v.SetDefault("llm.ollama.base_url", "http://localhost:11434")
	v.SetDefault("llm.ollama.model", "llama3.2:latest")
	v.SetDefault("llm.gemini.model", "gemini-1.5-flash")
	v.SetDefault("llm.openai.model", "gpt-4o")
	v.SetDefault("llm.anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("llm.anthropic.max_tokens", 2048)
	v.SetDefault("analysis.head_rows", 5)
	v.SetDefault("analysis.placeholder", "No response from LLaMA.")
	v.SetDefault("log.level", "info")

	// Read from YAML config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Read config file (ignore "not found": defaults + env are enough)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Environment variables override everything.
	// STOCK_ prefix + nested keys: STOCK_SERVER_PORT=9000 → server.port=9000
	v.SetEnvPrefix("STOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range legacyEnv {
		prefixed := "STOCK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, name); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	// Unmarshal into our Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Analysis.HeadRows <= 0 {
		return nil, fmt.Errorf("analysis.head_rows must be positive, got %d", cfg.Analysis.HeadRows)
	}

	return &cfg, nil
}

// Address returns the listen address string like "0.0.0.0:8000".
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Address returns the listen address of the web form.
func (w WebConfig) Address() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}
