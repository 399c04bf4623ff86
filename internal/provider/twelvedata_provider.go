package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/model"
)

// TwelveDataProvider fetches daily candles from the Twelve Data time_series endpoint.
type TwelveDataProvider struct {
	apiKey     string
	baseURL    string
	outputSize int
	client     *http.Client
}

// NewTwelveDataProvider creates a provider using the given key and HTTP client.
func NewTwelveDataProvider(cfg config.TwelveDataConfig, client *http.Client) *TwelveDataProvider {
	size := cfg.OutputSize
	if size <= 0 {
		size = 5000
	}
	return &TwelveDataProvider{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		outputSize: size,
		client:     client,
	}
}

func (p *TwelveDataProvider) Name() string { return "twelvedata" }

type twelveDataResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
}

func (p *TwelveDataProvider) DailyHistory(ctx context.Context, symbol string) ([]model.DailyBar, error) {
	if p.apiKey == "" {
		return nil, errors.New("twelvedata: API key is not configured (set TWELVE_DATA_API_KEY)")
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(p.outputSize))
	q.Set("apikey", p.apiKey)

	body, err := get(ctx, p.client, fmt.Sprintf("%s/time_series?%s", p.baseURL, q.Encode()))
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			// Twelve Data usually explains non-2xx statuses in the same envelope.
			var env twelveDataResponse
			if json.Unmarshal(se.Body, &env) == nil && env.Message != "" {
				return nil, fmt.Errorf("twelvedata: %s", env.Message)
			}
		}
		return nil, fmt.Errorf("twelvedata: %w", err)
	}

	var resp twelveDataResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("twelvedata: decoding response: %w", err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", resp.Message)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("twelvedata: no daily values returned for %s", symbol)
	}

	bars := make([]model.DailyBar, 0, len(resp.Values))
	for _, v := range resp.Values {
		tm, err := time.Parse("2006-01-02", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02 15:04:05", v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("twelvedata: parse time %q: %w", v.Datetime, err)
			}
		}
		o, err := strconv.ParseFloat(v.Open, 64)
		if err != nil {
			return nil, fmt.Errorf("twelvedata: parse open %q: %w", v.Open, err)
		}
		h, err := strconv.ParseFloat(v.High, 64)
		if err != nil {
			return nil, fmt.Errorf("twelvedata: parse high %q: %w", v.High, err)
		}
		l, err := strconv.ParseFloat(v.Low, 64)
		if err != nil {
			return nil, fmt.Errorf("twelvedata: parse low %q: %w", v.Low, err)
		}
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("twelvedata: parse close %q: %w", v.Close, err)
		}
		// Indices and some FX pairs carry no volume.
		var vol int64
		if v.Volume != "" {
			vol, err = strconv.ParseInt(v.Volume, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("twelvedata: parse volume %q: %w", v.Volume, err)
			}
		}
		bars = append(bars, model.DailyBar{Date: tm, Open: o, High: h, Low: l, Close: c, Volume: vol})
	}
	// Twelve Data already returns newest first.
	return bars, nil
}
