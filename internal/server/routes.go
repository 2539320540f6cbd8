package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orangesnowtech/dxi-reactions/internal/apperrors"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no rate limiting)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	api := s.echo.Group("", apperrors.Middleware())

	// Static segment registered before the :itemId param so "reset-all"
	// never matches as an item ID.
	api.POST("/reactions/reset-all", s.handleResetAll, s.rateLimiter())

	api.GET("/reactions/:itemId", s.handleGetCounts)
	api.POST("/reactions/:itemId", s.handleApplyReaction, s.rateLimiter())

	api.GET("/concepts", s.handleListConcepts)
}
