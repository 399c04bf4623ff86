package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
)

const alphaVantageDaily = `{
	"Meta Data": {
		"1. Information": "Daily Prices (open, high, low, close) and Volumes",
		"2. Symbol": "AAPL"
	},
	"Time Series (Daily)": {
		"2025-01-13": {"1. open": "233.5300", "2. high": "234.6700", "3. low": "229.7200", "4. close": "234.4000", "5. volume": "49630725"},
		"2025-01-15": {"1. open": "234.6350", "2. high": "238.9600", "3. low": "234.4300", "4. close": "237.8700", "5. volume": "39831969"},
		"2025-01-14": {"1. open": "234.7500", "2. high": "236.1200", "3. low": "232.4720", "4. close": "233.2800", "5. volume": "39435294"}
	}
}`

func newAlphaVantage(t *testing.T, handler http.HandlerFunc) *AlphaVantageProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAlphaVantageProvider(config.AlphaVantageConfig{APIKey: "test-key", BaseURL: server.URL}, server.Client())
}

func TestAlphaVantage_DailyHistory_Success(t *testing.T) {
	t.Parallel()

	p := newAlphaVantage(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/query" {
			t.Errorf("expected path /query, got %s", r.URL.Path)
		}
		if q.Get("function") != "TIME_SERIES_DAILY" {
			t.Errorf("expected function TIME_SERIES_DAILY, got %s", q.Get("function"))
		}
		if q.Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", q.Get("symbol"))
		}
		if q.Get("outputsize") != "full" {
			t.Errorf("expected outputsize full, got %s", q.Get("outputsize"))
		}
		if q.Get("apikey") != "test-key" {
			t.Errorf("expected apikey test-key, got %s", q.Get("apikey"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(alphaVantageDaily))
	})

	bars, err := p.DailyHistory(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}

	// Most recent first regardless of JSON key order.
	want := []string{"2025-01-15", "2025-01-14", "2025-01-13"}
	for i, w := range want {
		if got := bars[i].Date.Format("2006-01-02"); got != w {
			t.Errorf("bar %d: expected date %s, got %s", i, w, got)
		}
	}
	if bars[0].Close != 237.87 {
		t.Errorf("expected close 237.87, got %f", bars[0].Close)
	}
	if bars[0].Volume != 39831969 {
		t.Errorf("expected volume 39831969, got %d", bars[0].Volume)
	}
}

func TestAlphaVantage_DailyHistory_ProviderMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "invalid symbol",
			body: `{"Error Message": "Invalid API call. Please retry or visit the documentation (https://www.alphavantage.co/documentation/) for TIME_SERIES_DAILY."}`,
			want: "Invalid API call",
		},
		{
			name: "rate limit note",
			body: `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`,
			want: "call frequency",
		},
		{
			name: "information",
			body: `{"Information": "The **demo** API key is for demo purposes only."}`,
			want: "demo purposes",
		},
		{
			name: "empty series",
			body: `{"Meta Data": {}, "Time Series (Daily)": {}}`,
			want: "no daily time series",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newAlphaVantage(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := p.DailyHistory(context.Background(), "NOPE")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestAlphaVantage_DailyHistory_HTTPError(t *testing.T) {
	t.Parallel()

	p := newAlphaVantage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := p.DailyHistory(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "HTTP 503") || !strings.Contains(err.Error(), "upstream down") {
		t.Errorf("expected status and body in error, got %v", err)
	}
}

func TestAlphaVantage_DailyHistory_InvalidNumber(t *testing.T) {
	t.Parallel()

	p := newAlphaVantage(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Time Series (Daily)": {"2025-01-15": {"1. open": "abc", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"}}}`))
	})

	_, err := p.DailyHistory(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "parse open") {
		t.Errorf("expected parse open error, got %v", err)
	}
}

func TestAlphaVantage_DailyHistory_MissingKey(t *testing.T) {
	t.Parallel()

	p := NewAlphaVantageProvider(config.AlphaVantageConfig{BaseURL: "http://unused.test"}, &http.Client{})
	_, err := p.DailyHistory(context.Background(), "AAPL")
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Errorf("expected missing API key error, got %v", err)
	}
}

func TestAlphaVantage_DailyHistory_ContextCancellation(t *testing.T) {
	t.Parallel()

	p := newAlphaVantage(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(alphaVantageDaily))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := p.DailyHistory(ctx, "AAPL"); err == nil {
		t.Fatal("expected error due to context cancellation, got nil")
	}
}
