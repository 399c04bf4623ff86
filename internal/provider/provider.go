// Package provider defines the interface for market-data sources.
// Each provider (Alpha Vantage, Twelve Data, Yahoo Finance) implements this
// interface to supply a symbol's daily price history.
package provider

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/model"
)

// maxBodyBytes caps how much of an upstream response is read. A full Alpha
// Vantage daily history for a long-listed symbol is a few megabytes.
const maxBodyBytes = 32 << 20

const userAgent = "stock-analysis/1.0"

// MarketDataProvider is the interface for daily price history sources.
type MarketDataProvider interface {
	// DailyHistory returns every daily bar the source has for symbol,
	// most recent first. Unknown symbols surface as an error carrying
	// the source's own message.
	DailyHistory(ctx context.Context, symbol string) ([]model.DailyBar, error)

	// Name returns a human-readable name for the provider.
	Name() string
}

// New builds the provider selected by cfg.Provider.
func New(cfg config.MarketConfig, client *http.Client) (MarketDataProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "alphavantage", "alpha_vantage", "":
		return NewAlphaVantageProvider(cfg.AlphaVantage, client), nil
	case "twelvedata", "twelve_data":
		return NewTwelveDataProvider(cfg.TwelveData, client), nil
	case "yahoo", "yfinance":
		return NewYahooProvider(cfg.Yahoo, client), nil
	default:
		return nil, fmt.Errorf("unknown market provider: %s", cfg.Provider)
	}
}

// NewHTTPClient returns a client for calling external APIs.
// http.DefaultClient has no timeout, so a custom client is always used.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// statusError is returned by get for non-2xx responses. It keeps the body so
// providers that encode their error message in it can surface that text.
type statusError struct {
	StatusCode int
	Body       []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// get performs a GET and returns the (size-limited) body of a 2xx response.
func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
