package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Suraj89011/discord-bot-template/internal/domain"
	apierrors "github.com/Suraj89011/discord-bot-template/internal/errors"
	"github.com/Suraj89011/discord-bot-template/internal/metrics"
)

const (
	statsCacheKey = "stats:overview"
	statsCacheTTL = 5 * time.Minute

	defaultStatsDays = 7
	maxStatsDays     = 90
	topCommandsLimit = 20
)

func (s *Server) handleStatsOverview(c echo.Context) error {
	ctx := c.Request().Context()

	if s.cache != nil {
		var cached domain.StatsOverview
		hit, err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			slog.Warn("stats cache read failed", "error", err)
		}
		if hit {
			metrics.StatsCacheHits.WithLabelValues("hit").Inc()
			return respondStats(c, &cached, true)
		}
	}
	metrics.StatsCacheHits.WithLabelValues("miss").Inc()

	// Collapse concurrent recomputes after TTL expiry into one set of
	// queries.
	result, err, _ := s.statsGroup.Do(statsCacheKey, func() (any, error) {
		return s.computeOverview(ctx)
	})
	if err != nil {
		return fmt.Errorf("compute stats overview: %w", err)
	}
	overview := result.(*domain.StatsOverview)

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, overview, statsCacheTTL); err != nil {
			slog.Warn("stats cache write failed", "error", err)
		}
	}
	return respondStats(c, overview, false)
}

func (s *Server) computeOverview(ctx context.Context) (*domain.StatsOverview, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	total, err := s.servers.Count(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count servers: %w", err)
	}
	active, err := s.servers.Count(ctx, boolPtr(true))
	if err != nil {
		return nil, fmt.Errorf("count active servers: %w", err)
	}

	overview := &domain.StatsOverview{
		Users:     users,
		Timestamp: s.clock.Now().UTC(),
	}
	overview.Servers.Total = total
	overview.Servers.Active = active
	overview.Servers.Inactive = total - active
	return overview, nil
}

func respondStats(c echo.Context, overview *domain.StatsOverview, cached bool) error {
	return c.JSON(http.StatusOK, response{Success: true, Data: overview, Cached: &cached})
}

type commandStatsData struct {
	Period   string               `json:"period"`
	Commands []domain.CommandStat `json:"commands"`
}

func (s *Server) handleStatsCommands(c echo.Context) error {
	days, err := queryInt(c, "days", defaultStatsDays)
	if err != nil || days < 1 || days > maxStatsDays {
		return apierrors.ValidationError(fmt.Sprintf("days must be between 1 and %d", maxStatsDays))
	}

	since := s.clock.Now().AddDate(0, 0, -days)
	stats, err := s.usage.TopCommands(c.Request().Context(), since, topCommandsLimit)
	if err != nil {
		return fmt.Errorf("top commands: %w", err)
	}

	return respondOK(c, commandStatsData{
		Period:   fmt.Sprintf("%d days", days),
		Commands: stats,
	})
}
