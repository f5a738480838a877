package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/core"
)

// HTTPServer exposes the pipeline and classifier operations over HTTP. Every
// endpoint answers with the uniform success/error envelope.
type HTTPServer struct {
	echo       *echo.Echo
	ingestion  *core.IngestionService
	enrichment *core.EnrichmentService
	emails     core.EmailStore
	responses  core.ResponseStore
	sender     core.ReplySender
	logger     *zap.Logger
}

// NewHTTPServer creates the server and registers all routes
func NewHTTPServer(
	ingestion *core.IngestionService,
	enrichment *core.EnrichmentService,
	emails core.EmailStore,
	responses core.ResponseStore,
	sender core.ReplySender,
	logger *zap.Logger,
) *HTTPServer {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	server := &HTTPServer{
		echo:       e,
		ingestion:  ingestion,
		enrichment: enrichment,
		emails:     emails,
		responses:  responses,
		sender:     sender,
		logger:     logger,
	}
	server.registerRoutes(e)

	return server
}

func (s *HTTPServer) registerRoutes(e *echo.Echo) {
	e.GET("/health", s.healthCheck)
	e.GET("/analytics", s.handleAnalytics)
	e.GET("/emails", s.handleIngest)
	e.GET("/emails/:id", s.handleGetEmail)
	e.GET("/emails/:id/responses", s.handleListResponses)
	e.POST("/categorize", s.handleCategorize)
	e.POST("/respond", s.handleRespond)
	e.PATCH("/responses/:id", s.handleEditResponse)
	e.POST("/webhook", s.handleWebhook)
}

// Start begins serving on the given address
func (s *HTTPServer) Start(address string) error {
	s.logger.Info("Starting HTTP server", zap.String("address", address))
	return s.echo.Start(address)
}

// Shutdown stops the server gracefully
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router, mainly for tests
func (s *HTTPServer) Echo() *echo.Echo {
	return s.echo
}
