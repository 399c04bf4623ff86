package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/model"
)

// ErrNoYahooData is returned when the chart endpoint answers without any rows.
var ErrNoYahooData = errors.New("no data returned from Yahoo Finance")

// YahooProvider reads daily bars from Yahoo Finance's public chart endpoint.
// No API key is needed; the history window is bounded by the configured range.
type YahooProvider struct {
	baseURL   string
	dataRange string
	client    *http.Client
}

// NewYahooProvider creates a provider for the chart API.
func NewYahooProvider(cfg config.YahooConfig, client *http.Client) *YahooProvider {
	r := cfg.Range
	if r == "" {
		r = "1mo"
	}
	return &YahooProvider{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		dataRange: r,
		client:    client,
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (p *YahooProvider) DailyHistory(ctx context.Context, symbol string) ([]model.DailyBar, error) {
	q := url.Values{}
	q.Set("range", p.dataRange)
	q.Set("interval", "1d")

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.baseURL, url.PathEscape(symbol), q.Encode())
	body, err := get(ctx, p.client, endpoint)
	if err != nil {
		// Unknown symbols come back as 404 with the reason in chart.error.
		var se *statusError
		if errors.As(err, &se) {
			var env yahooChartResponse
			if json.Unmarshal(se.Body, &env) == nil && env.Chart.Error != nil {
				return nil, fmt.Errorf("yahoo: %s", env.Chart.Error.Description)
			}
		}
		return nil, fmt.Errorf("yahoo: %w", err)
	}

	var resp yahooChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("yahoo: decoding response: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoYahooData
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	offset := time.Duration(result.Meta.GMTOffset) * time.Second

	bars := make([]model.DailyBar, 0, len(result.Timestamp))
	// The chart lists oldest first; walk it backwards for most-recent-first.
	for i := len(result.Timestamp) - 1; i >= 0; i-- {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		// Halted sessions appear as null rows.
		if o == nil || h == nil || l == nil || c == nil {
			continue
		}
		var vol int64
		if v := at(quote.Volume, i); v != nil {
			vol = *v
		}
		local := time.Unix(result.Timestamp[i], 0).UTC().Add(offset)
		bars = append(bars, model.DailyBar{
			Date:   time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
			Open:   *o,
			High:   *h,
			Low:    *l,
			Close:  *c,
			Volume: vol,
		})
	}

	if len(bars) == 0 {
		return nil, ErrNoYahooData
	}
	return bars, nil
}

func at[T any](values []*T, i int) *T {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
