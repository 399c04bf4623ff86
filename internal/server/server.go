// Package server configures the HTTP servers and routes.
// The same Server type runs both the analysis API and the web form.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hardikparikh99/Stock-Analysis/internal/config"
	"github.com/hardikparikh99/Stock-Analysis/internal/frontend"
	"github.com/hardikparikh99/Stock-Analysis/internal/handler"
	"github.com/hardikparikh99/Stock-Analysis/internal/middleware"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	addr   string
	router *gin.Engine
	logger *zap.Logger
	http   *http.Server
}

// Deps are the collaborators the API routes need.
type Deps struct {
	Analyzer handler.Analyzer
}

// New creates the analysis API server.
func New(cfg *config.Config, deps Deps, logger *zap.Logger) *Server {
	router := newRouter(cfg.Log.Level, logger)
	RegisterRoutes(router, cfg, deps, logger)
	return newServer(cfg.Server.Address(), cfg.Server.WriteTimeout, router, logger)
}

// NewWeb creates the browser form server. backend is normally a
// *frontend.Client pointed at the API.
func NewWeb(cfg *config.Config, backend handler.Analyzer, logger *zap.Logger) (*Server, error) {
	tmpl, err := frontend.Templates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	router := newRouter(cfg.Log.Level, logger)
	router.SetHTMLTemplate(tmpl)
	RegisterWebRoutes(router, backend, logger)

	// The form waits on the API, which waits on the LLM.
	return newServer(cfg.Web.Address(), cfg.Web.Timeout+30*time.Second, router, logger), nil
}

func newRouter(logLevel string, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on log level
	if logLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Recovery middleware catches panics and returns 500 instead of crashing.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	return router
}

func newServer(addr string, writeTimeout time.Duration, router *gin.Engine, logger *zap.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Minute
	}
	return &Server{
		addr:   addr,
		router: router,
		logger: logger,
		http: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins listening for HTTP requests. This blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("address", s.addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server listen: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.http.Shutdown(ctx)
}

// Router returns the underlying Gin engine (useful for testing).
func (s *Server) Router() *gin.Engine {
	return s.router
}
