// Package server is the companion REST API: CRUD over the bot's users
// and servers plus cached statistics, behind a shared-secret header.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/Suraj89011/discord-bot-template/internal/config"
	"github.com/Suraj89011/discord-bot-template/internal/domain"
	apierrors "github.com/Suraj89011/discord-bot-template/internal/errors"
	"github.com/Suraj89011/discord-bot-template/internal/redis"
)

// Pinger reports dependency health for the health endpoints.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles the server's collaborators.
type Deps struct {
	Users   domain.UserRepository
	Servers domain.ServerRepository
	Usage   domain.UsageRepository
	// Cache may be nil; the stats handler then recomputes on every call.
	Cache *redis.Cache
	DB    Pinger
	Redis Pinger
	Clock clockwork.Clock
}

type Server struct {
	echo    *echo.Echo
	config  *config.Config
	users   domain.UserRepository
	servers domain.ServerRepository
	usage   domain.UsageRepository
	cache   *redis.Cache
	db      Pinger
	redis   Pinger
	clock   clockwork.Clock

	// statsGroup collapses concurrent stats recomputes into one query
	// burst when the cache entry expires.
	statsGroup singleflight.Group
}

func New(cfg *config.Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(apierrors.Middleware())

	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	srv := &Server{
		echo:    e,
		config:  cfg,
		users:   deps.Users,
		servers: deps.Servers,
		usage:   deps.Usage,
		cache:   deps.Cache,
		db:      deps.DB,
		redis:   deps.Redis,
		clock:   clock,
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting API server", "port", s.config.APIPort)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.APIPort))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger emits one slog line per request in the format the rest
// of the process logs in.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	})
}
