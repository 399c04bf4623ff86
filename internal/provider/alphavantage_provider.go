package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/model"
)

// AlphaVantageProvider fetches the full daily series from Alpha Vantage's
// TIME_SERIES_DAILY function.
type AlphaVantageProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAlphaVantageProvider creates a provider using the given key and HTTP client.
func NewAlphaVantageProvider(cfg config.AlphaVantageConfig, client *http.Client) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}
}

func (p *AlphaVantageProvider) Name() string { return "alphavantage" }

// alphaVantageBar uses Alpha Vantage's numbered keys. Every value is a string.
type alphaVantageBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// alphaVantageResponse covers both the data payload and the three shapes
// Alpha Vantage uses to report problems with a 200 status.
type alphaVantageResponse struct {
	MetaData     map[string]string          `json:"Meta Data"`
	TimeSeries   map[string]alphaVantageBar `json:"Time Series (Daily)"`
	ErrorMessage string                     `json:"Error Message"`
	Note         string                     `json:"Note"`
	Information  string                     `json:"Information"`
}

func (p *AlphaVantageProvider) DailyHistory(ctx context.Context, symbol string) ([]model.DailyBar, error) {
	if p.apiKey == "" {
		return nil, errors.New("alphavantage: API key is not configured (set ALPHA_VANTAGE_API_KEY)")
	}

	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("outputsize", "full")
	q.Set("apikey", p.apiKey)

	body, err := get(ctx, p.client, fmt.Sprintf("%s/query?%s", p.baseURL, q.Encode()))
	if err != nil {
		return nil, fmt.Errorf("alphavantage: %w", err)
	}

	var resp alphaVantageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("alphavantage: decoding response: %w", err)
	}

	switch {
	case resp.ErrorMessage != "":
		return nil, fmt.Errorf("alphavantage: %s", resp.ErrorMessage)
	case resp.Information != "":
		return nil, fmt.Errorf("alphavantage: %s", resp.Information)
	case resp.Note != "":
		return nil, fmt.Errorf("alphavantage: %s", resp.Note)
	case len(resp.TimeSeries) == 0:
		return nil, fmt.Errorf("alphavantage: no daily time series returned for %s", symbol)
	}

	bars := make([]model.DailyBar, 0, len(resp.TimeSeries))
	for date, v := range resp.TimeSeries {
		bar, err := parseAlphaVantageBar(date, v)
		if err != nil {
			return nil, fmt.Errorf("alphavantage: %w", err)
		}
		bars = append(bars, bar)
	}

	// JSON objects are unordered; restore most-recent-first.
	slices.SortFunc(bars, func(a, b model.DailyBar) int {
		return b.Date.Compare(a.Date)
	})
	return bars, nil
}

func parseAlphaVantageBar(date string, v alphaVantageBar) (model.DailyBar, error) {
	tm, err := time.Parse("2006-01-02", date)
	if err != nil {
		return model.DailyBar{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	o, err := strconv.ParseFloat(v.Open, 64)
	if err != nil {
		return model.DailyBar{}, fmt.Errorf("parse open %q: %w", v.Open, err)
	}
	h, err := strconv.ParseFloat(v.High, 64)
	if err != nil {
		return model.DailyBar{}, fmt.Errorf("parse high %q: %w", v.High, err)
	}
	l, err := strconv.ParseFloat(v.Low, 64)
	if err != nil {
		return model.DailyBar{}, fmt.Errorf("parse low %q: %w", v.Low, err)
	}
	c, err := strconv.ParseFloat(v.Close, 64)
	if err != nil {
		return model.DailyBar{}, fmt.Errorf("parse close %q: %w", v.Close, err)
	}
	vol, err := strconv.ParseInt(v.Volume, 10, 64)
	if err != nil {
		return model.DailyBar{}, fmt.Errorf("parse volume %q: %w", v.Volume, err)
	}
	return model.DailyBar{Date: tm, Open: o, High: h, Low: l, Close: c, Volume: vol}, nil
}
