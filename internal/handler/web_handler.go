package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardikparikh99/Stock-Analysis/internal/frontend"
)

const indexTemplate = "index.html"

// WebHandler serves the browser form and relays submissions to the API.
type WebHandler struct {
	backend Analyzer
	logger  *zap.Logger
}

// NewWebHandler creates a WebHandler that forwards to backend.
func NewWebHandler(backend Analyzer, logger *zap.Logger) *WebHandler {
	return &WebHandler{
		backend: backend,
		logger:  logger,
	}
}

// Index renders the empty form.
// Route: GET /
func (h *WebHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, frontend.Page{})
}

// Analyze handles a form submission.
// Route: POST / (form field "symbol")
//
// An empty symbol only shows a warning. Otherwise exactly one API call is
// made and its result, the API's error detail, or the transport fault is shown.
func (h *WebHandler) Analyze(c *gin.Context) {
	symbol := strings.ToUpper(c.PostForm("symbol"))
	page := frontend.Page{Symbol: symbol}

	if symbol == "" {
		page.Warning = "Please enter a stock symbol"
		c.HTML(http.StatusOK, indexTemplate, page)
		return
	}

	result, err := h.backend.Analyze(c.Request.Context(), symbol)
	if err != nil {
		var be *frontend.BackendError
		if errors.As(err, &be) {
			page.Error = "Error: " + be.Detail
		} else {
			page.Error = "An error occurred: " + err.Error()
		}
		h.logger.Warn("analysis request failed",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		c.HTML(http.StatusOK, indexTemplate, page)
		return
	}

	page.Analysis = result.Analysis
	c.HTML(http.StatusOK, indexTemplate, page)
}
