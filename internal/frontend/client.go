// Package frontend is the presentation layer: an HTTP client for the
// analysis API plus the templates of the browser form.
package frontend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hardikparikh99/Stock-Analysis/internal/model"
)

// BackendError is a structured failure reported by the analysis API.
// Detail is the server-supplied message.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	return e.Detail
}

// Client calls the analysis API. One Analyze call is one POST; nothing is retried.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the API at baseURL (e.g. "http://localhost:8000").
func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Analyze posts symbol to /analyze_stock. Non-2xx answers are returned as
// *BackendError; transport faults and undecodable bodies as plain errors.
func (c *Client) Analyze(ctx context.Context, symbol string) (*model.AnalysisResult, error) {
	payload, err := json.Marshal(model.AnalysisRequest{StockSymbol: symbol})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze_stock", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling analysis API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &BackendError{StatusCode: resp.StatusCode, Detail: errorDetail(resp.StatusCode, body)}
	}

	var out struct {
		Analysis *string `json:"analysis"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}
	if out.Analysis == nil {
		return nil, errors.New("analysis response has no analysis field")
	}
	return &model.AnalysisResult{Analysis: *out.Analysis}, nil
}

// errorDetail prefers the API's {"detail": ...} and falls back to the raw body.
func errorDetail(status int, body []byte) string {
	var er model.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		return er.Detail
	}
	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}
	return http.StatusText(status)
}
