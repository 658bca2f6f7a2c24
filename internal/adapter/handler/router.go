package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/signal-pulse/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/signal-pulse/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg          *config.Config
	pulseHandler *Pulse
	guard        *middleware.PasscodeGuard
	metrics      http.Handler
}

// NewRouter creates a new router with all handlers. metrics may be nil.
func NewRouter(cfg *config.Config, pulseHandler *Pulse, guard *middleware.PasscodeGuard, metrics http.Handler) *Router {
	return &Router{
		cfg:          cfg,
		pulseHandler: pulseHandler,
		guard:        guard,
		metrics:      metrics,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	if rt.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metrics))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupPulseRoutes(v1)
}

// setupPulseRoutes configures signal pulse routes
func (rt *Router) setupPulseRoutes(g *echo.Group) {
	pulseGroup := g.Group("/signal-pulse")

	if rt.pulseHandler == nil {
		pulseGroup.Any("", rt.notImplemented)
		pulseGroup.Any("/*", rt.notImplemented)
		return
	}

	pulseGroup.GET("/health", rt.pulseHandler.Health)
	pulseGroup.POST("", rt.pulseHandler.Run)
	pulseGroup.POST("/score", rt.pulseHandler.Score)

	// Read endpoints carry the passcode in a header
	requirePasscode := rt.guard.RequireHeader()
	pulseGroup.GET("/history", rt.pulseHandler.History, requirePasscode)
	pulseGroup.GET("/runs", rt.pulseHandler.ListRuns, requirePasscode)
	pulseGroup.GET("/runs/:run_id", rt.pulseHandler.GetRun, requirePasscode)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
