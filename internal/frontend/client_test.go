package frontend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardikparikh99/Stock-Analysis/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", server.Client())
}

func TestClientAnalyze_Success(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze_stock", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.AnalysisRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "AAPL", req.StockSymbol)

		_, _ = w.Write([]byte(`{"analysis": "Apple shows an uptrend..."}`))
	})

	result, err := c.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple shows an uptrend...", result.Analysis)
	assert.Equal(t, 1, calls)
}

func TestClientAnalyze_BackendErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"client error detail", http.StatusBadRequest, `{"detail": "Error fetching stock data: Invalid API call"}`, "Error fetching stock data: Invalid API call"},
		{"server error detail", http.StatusInternalServerError, `{"detail": "Ollama Error: down"}`, "Ollama Error: down"},
		{"non json body", http.StatusBadGateway, "upstream unavailable\n", "upstream unavailable"},
		{"empty body", http.StatusServiceUnavailable, "", "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Analyze(context.Background(), "AAPL")

			var be *BackendError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.status, be.StatusCode)
			assert.Equal(t, tt.wantDetail, be.Detail)
		})
	}
}

func TestClientAnalyze_MissingAnalysisField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": "x"}`))
	})

	_, err := c.Analyze(context.Background(), "AAPL")
	require.Error(t, err)

	var be *BackendError
	assert.False(t, errors.As(err, &be))
}

func TestClientAnalyze_TransportFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, &http.Client{}).Analyze(context.Background(), "AAPL")
	require.Error(t, err)

	var be *BackendError
	assert.False(t, errors.As(err, &be))
	assert.Contains(t, err.Error(), "calling analysis API")
}

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup("index.html"))
}
