package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/martijn/resultsapi/internal/adapter/logging"
	_ "github.com/martijn/resultsapi/internal/api/docs"
	"github.com/martijn/resultsapi/internal/api/handler"
	"github.com/martijn/resultsapi/internal/api/middleware"
	"github.com/martijn/resultsapi/internal/api/util"
	"github.com/martijn/resultsapi/internal/core/service"
	"github.com/martijn/resultsapi/pkg/config"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger logging.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	authService *service.AuthService,
	resultService *service.ResultService,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	router.NoRoute(func(c *gin.Context) {
		util.RenderError(c, http.StatusNotFound, "Not Found")
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	resultHandler := handler.NewResultHandler(resultService)

	// Public routes (no auth required)
	handler.RegisterAuthRoutes(router, authHandler)

	// Results; every method but OPTIONS requires a bearer token
	handler.RegisterResultRoutes(router, resultHandler, middleware.AuthMiddleware(authService))

	// API document
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	server := &Server{
		router: router,
		config: cfg,
		logger: logger,
	}

	return server
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.logger.Info("starting HTTPS server", "addr", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.logger.Info("starting HTTP server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
