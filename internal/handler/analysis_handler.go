package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardikparikh99/Stock-Analysis/internal/model"
	"github.com/hardikparikh99/Stock-Analysis/internal/service"
)

// Analyzer produces an analysis for a symbol. The backend's AnalysisService
// and the web form's API client both satisfy it.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.AnalysisResult, error)
}

// AnalysisHandler exposes the analysis pipeline over HTTP.
type AnalysisHandler struct {
	analyzer Analyzer
	logger   *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzer Analyzer, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// AnalyzeStock runs the full pipeline for the posted symbol.
// Route: POST /analyze_stock {"stock_symbol": "AAPL"}
//
// 200 {"analysis": ...} on success, 400 {"detail": ...} when market data
// could not be fetched, 500 {"detail": ...} for LLM or unexpected failures.
func (h *AnalysisHandler) AnalyzeStock(c *gin.Context) {
	var req model.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, model.ErrorResponse{
			Detail: "invalid request body: " + err.Error(),
		})
		return
	}

	// A caller that stops waiting does not abort the upstream calls.
	ctx := context.WithoutCancel(c.Request.Context())

	result, err := h.analyzer.Analyze(ctx, req.StockSymbol)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrClient) {
			status = http.StatusBadRequest
		}

		detail := err.Error()
		var ae *service.AnalysisError
		if errors.As(err, &ae) {
			detail = ae.Message
		}

		h.logger.Warn("analysis failed",
			zap.String("symbol", req.StockSymbol),
			zap.Int("status", status),
			zap.Error(err),
		)
		c.JSON(status, model.ErrorResponse{Detail: detail})
		return
	}

	c.JSON(http.StatusOK, result)
}
