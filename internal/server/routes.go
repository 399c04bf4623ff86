package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/handler"
	"github.com/hardikparikh99/Stock-Analysis/internal/middleware"
)

// RegisterRoutes sets up the analysis API routes on the Gin engine.
// Dependencies are passed explicitly; each handler gets exactly what it needs.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler("stock-analysis")
	analysisHandler := handler.NewAnalysisHandler(deps.Analyzer, logger)

	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	{
		api.POST("/analyze_stock", analysisHandler.AnalyzeStock)
		api.OPTIONS("/analyze_stock", func(c *gin.Context) {})
	}
}

// RegisterWebRoutes sets up the browser form.
func RegisterWebRoutes(r *gin.Engine, backend handler.Analyzer, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler("stock-analysis-web")
	webHandler := handler.NewWebHandler(backend, logger)

	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/", webHandler.Index)
	r.POST("/", webHandler.Analyze)
}
