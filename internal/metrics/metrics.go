// Package metrics defines the Prometheus collectors shared across the
// bot and API processes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command dispatch metrics
var (
	// CommandExecutionsTotal tracks slash command dispatch outcomes.
	// status is one of: executed, failed, cooldown, unknown.
	CommandExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_command_executions_total",
			Help: "Slash command dispatch outcomes by command and status",
		},
		[]string{"command", "status"},
	)

	// CommandDuration tracks handler execution latency in seconds.
	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_command_duration_seconds",
			Help:    "Slash command handler duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"command"},
	)

	// CooldownEntriesActive tracks live cooldown ledger entries.
	CooldownEntriesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_cooldown_entries_active",
			Help: "Number of live cooldown ledger entries",
		},
	)
)

// Gateway metrics
var (
	// GatewayEventsTotal tracks inbound gateway events by type.
	GatewayEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_gateway_events_total",
			Help: "Inbound Discord gateway events by event type",
		},
		[]string{"event"},
	)

	// GuildsJoined tracks guilds the bot was added to.
	GuildsJoined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_guilds_joined_total",
			Help: "Guilds the bot has joined since process start",
		},
	)

	// GuildsLeft tracks guilds the bot was removed from.
	GuildsLeft = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_guilds_left_total",
			Help: "Guilds the bot has left since process start",
		},
	)
)

// API client metrics
var (
	// APIClientRequestsTotal tracks outbound requests to the companion API.
	APIClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_api_client_requests_total",
			Help: "Outbound API service requests by status",
		},
		[]string{"status"},
	)
)

// API server metrics
var (
	// StatsCacheHits tracks stats overview cache outcomes.
	StatsCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_stats_cache_total",
			Help: "Stats overview cache lookups by outcome (hit/miss)",
		},
		[]string{"outcome"},
	)
)
