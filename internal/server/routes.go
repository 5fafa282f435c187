package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/ready", s.handleReady)
	s.echo.GET("/live", s.handleLive)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Authenticated API namespace
	api := s.echo.Group("/api", s.apiKeyAuth, s.rateLimiter())

	api.GET("/users", s.handleListUsers)
	api.GET("/users/:discordId", s.handleGetUser)
	api.POST("/users", s.handleUpsertUser)
	api.PUT("/users/:discordId", s.handleUpdateUser)
	api.DELETE("/users/:discordId", s.handleDeleteUser)

	api.GET("/servers", s.handleListServers)
	api.GET("/servers/:discordId", s.handleGetServer)
	api.POST("/servers", s.handleUpsertServer)
	api.PUT("/servers/:discordId/settings", s.handleUpdateServerSettings)
	api.DELETE("/servers/:discordId", s.handleDeleteServer)

	api.GET("/stats", s.handleStatsOverview)
	api.GET("/stats/commands", s.handleStatsCommands)
}
