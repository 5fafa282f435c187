package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Suraj89011/discord-bot-template/internal/version"
)

const healthCheckTimeout = 2 * time.Second

func (s *Server) handleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	dbHealthy := s.db != nil && s.db.Ping(ctx) == nil
	redisHealthy := s.redis != nil && s.redis.Ping(ctx) == nil
	healthy := dbHealthy && redisHealthy

	status := http.StatusOK
	statusText := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		statusText = "unhealthy"
	}

	return c.JSON(status, map[string]any{
		"status":    statusText,
		"timestamp": s.clock.Now().UTC().Format(time.RFC3339),
		"service":   "api",
		"version":   version.Get().Version,
		"services": map[string]string{
			"database": upDown(dbHealthy),
			"redis":    upDown(redisHealthy),
		},
	})
}

func (s *Server) handleReady(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if s.db == nil || s.db.Ping(ctx) != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleLive(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "alive"})
}

func upDown(healthy bool) string {
	if healthy {
		return "up"
	}
	return "down"
}
