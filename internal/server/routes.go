package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Public kiosk routes
	s.echo.POST("/api/feedback", s.handleSubmitFeedback)
	s.echo.GET("/api/feedback", s.handleListFeedback)

	// Admin auth
	s.echo.POST("/api/admin/login", s.handleAdminLogin)
	s.echo.POST("/api/admin/logout", s.handleAdminLogout, s.requireAdmin)

	// Admin API (session protected)
	s.echo.GET("/api/admin/stats", s.handleAdminStats, s.requireAdmin)
	s.echo.GET("/api/admin/export", s.handleAdminExport, s.requireAdmin)

	// Live dashboard WebSocket
	if s.broadcaster != nil {
		s.echo.GET("/ws/admin/stats", s.handleStatsWebSocket, s.requireAdmin)
	}
}
