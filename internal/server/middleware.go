package server

import (
	"crypto/subtle"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	apierrors "github.com/Suraj89011/discord-bot-template/internal/errors"
)

const apiKeyHeader = "X-API-Key"

// apiKeyAuth guards the /api namespace with a shared secret. The
// comparison is constant-time so response timing leaks nothing about
// the key.
func (s *Server) apiKeyAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		provided := c.Request().Header.Get(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(s.config.APIKey)) != 1 {
			return apierrors.UnauthorizedError("Invalid or missing API key")
		}
		return next(c)
	}
}

// rateLimiter caps requests per client IP on the /api namespace. The
// burst equals the per-minute budget, so short spikes pass and
// sustained abuse gets 429s.
func (s *Server) rateLimiter() echo.MiddlewareFunc {
	perMinute := s.config.RateLimitPerMinute
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMinute) / 60.0),
			Burst:     perMinute,
			ExpiresIn: 3 * time.Minute,
		}),
		ErrorHandler: func(echo.Context, error) error {
			return apierrors.InternalError("rate limiter failure", nil)
		},
		DenyHandler: func(echo.Context, string, error) error {
			return apierrors.RateLimitedError("Too many requests")
		},
	})
}
