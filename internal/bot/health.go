package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 2 * time.Second

// postgresPinger is the subset of the connection pool used by health checks.
type postgresPinger interface {
	Ping(ctx context.Context) error
}

// redisPinger is the subset of the Redis client used by health checks.
type redisPinger interface {
	Ping(ctx context.Context) error
}

// gatewayStatus reports the state of the Discord connection.
type gatewayStatus interface {
	Ready() bool
	GuildCount() int
	Username() string
}

// sessionStatus adapts a live discordgo session to gatewayStatus.
type sessionStatus struct {
	session *discordgo.Session
}

func (s sessionStatus) Ready() bool {
	return s.session.DataReady
}

func (s sessionStatus) GuildCount() int {
	s.session.State.RLock()
	defer s.session.State.RUnlock()
	return len(s.session.State.Guilds)
}

func (s sessionStatus) Username() string {
	s.session.State.RLock()
	defer s.session.State.RUnlock()
	if s.session.State.User == nil {
		return ""
	}
	return s.session.State.User.Username
}

// HealthServer exposes the bot's health/readiness/liveness endpoints
// alongside the gateway connection.
type HealthServer struct {
	echo      *echo.Echo
	db        postgresPinger
	redis     redisPinger
	gateway   gatewayStatus
	clock     clockwork.Clock
	startTime time.Time
	port      string
}

func NewHealthServer(port string, db postgresPinger, redis redisPinger, session *discordgo.Session, clock clockwork.Clock) *HealthServer {
	return newHealthServer(port, db, redis, sessionStatus{session: session}, clock)
}

func newHealthServer(port string, db postgresPinger, redis redisPinger, gateway gatewayStatus, clock clockwork.Clock) *HealthServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	h := &HealthServer{
		echo:      e,
		db:        db,
		redis:     redis,
		gateway:   gateway,
		clock:     clock,
		startTime: clock.Now(),
		port:      port,
	}

	e.GET("/health", h.handleHealth)
	e.GET("/ready", h.handleReady)
	e.GET("/live", h.handleLive)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return h
}

func (h *HealthServer) Start() error {
	return h.echo.Start(fmt.Sprintf(":%s", h.port))
}

func (h *HealthServer) Shutdown(ctx context.Context) error {
	return h.echo.Shutdown(ctx)
}

func (h *HealthServer) handleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	dbHealthy := h.db.Ping(ctx) == nil
	redisHealthy := h.redis.Ping(ctx) == nil
	gatewayHealthy := h.gateway.Ready()
	healthy := dbHealthy && redisHealthy && gatewayHealthy

	status := http.StatusOK
	statusText := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		statusText = "unhealthy"
	}

	var discord map[string]any
	if gatewayHealthy {
		discord = map[string]any{
			"guilds": h.gateway.GuildCount(),
			"user":   h.gateway.Username(),
		}
	}

	return c.JSON(status, map[string]any{
		"status":    statusText,
		"timestamp": h.clock.Now().UTC().Format(time.RFC3339),
		"uptime":    h.clock.Since(h.startTime).Seconds(),
		"services": map[string]string{
			"database": upDown(dbHealthy),
			"redis":    upDown(redisHealthy),
			"discord":  connectedDisconnected(gatewayHealthy),
		},
		"discord": discord,
	})
}

func (h *HealthServer) handleReady(c echo.Context) error {
	if h.gateway.Ready() {
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	}
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
}

func (h *HealthServer) handleLive(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "alive"})
}

func upDown(healthy bool) string {
	if healthy {
		return "up"
	}
	return "down"
}

func connectedDisconnected(healthy bool) string {
	if healthy {
		return "connected"
	}
	return "disconnected"
}
