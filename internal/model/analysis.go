// Package model defines the core data types for the stock analysis service.
// Struct tags (the `json:"..."` annotations) fix the wire names shared by the
// API and the web form.
package model

import "time"

// AnalysisRequest is the body of POST /analyze_stock.
type AnalysisRequest struct {
	StockSymbol string `json:"stock_symbol"`
}

// AnalysisResult carries the generated text back to the caller.
type AnalysisResult struct {
	Analysis string `json:"analysis"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// DailyBar is one trading day of price history.
type DailyBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Head returns up to n of the most recent bars. Histories are ordered
// most recent first, so this is a prefix.
func Head(bars []DailyBar, n int) []DailyBar {
	if n < 0 {
		n = 0
	}
	if len(bars) < n {
		return bars
	}
	return bars[:n]
}
