package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Suraj89011/discord-bot-template/internal/domain"
	"github.com/Suraj89011/discord-bot-template/internal/metrics"
)

const guildEventTimeout = 10 * time.Second

// Router subscribes to gateway events and forwards them to their
// handling routines. It carries no business logic beyond discriminating
// event kind.
type Router struct {
	dispatcher *Dispatcher
	servers    domain.ServerRepository

	// readyOnce guards the startup callback: the gateway re-emits Ready
	// on every reconnect, but startup work must run at most once.
	readyOnce sync.Once
	onReady   func(s *discordgo.Session, r *discordgo.Ready)
}

func NewRouter(dispatcher *Dispatcher, servers domain.ServerRepository, onReady func(s *discordgo.Session, r *discordgo.Ready)) *Router {
	return &Router{
		dispatcher: dispatcher,
		servers:    servers,
		onReady:    onReady,
	}
}

// Bind registers the router's callbacks on the session. Call before
// opening the gateway connection.
func (rt *Router) Bind(s *discordgo.Session) {
	s.AddHandler(rt.handleInteraction)
	s.AddHandler(rt.handleReady)
	s.AddHandler(rt.handleGuildCreate)
	s.AddHandler(rt.handleGuildDelete)
}

func (rt *Router) handleInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	metrics.GatewayEventsTotal.WithLabelValues("interaction_create").Inc()
	rt.dispatcher.Dispatch(s, ic)
}

func (rt *Router) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	metrics.GatewayEventsTotal.WithLabelValues("ready").Inc()
	rt.readyOnce.Do(func() {
		if rt.onReady != nil {
			rt.onReady(s, r)
		}
	})
}

func (rt *Router) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	metrics.GatewayEventsTotal.WithLabelValues("guild_create").Inc()
	if rt.servers == nil {
		return
	}

	logger := slog.With("guild_id", g.ID, "guild", g.Name)
	logger.Info("Joined guild", "member_count", g.MemberCount, "owner_id", g.OwnerID)
	metrics.GuildsJoined.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), guildEventTimeout)
	defer cancel()
	if _, err := rt.servers.Upsert(ctx, g.ID, g.Name, g.MemberCount, g.OwnerID); err != nil {
		logger.Error("Failed to upsert server record", "error", err)
	}
}

func (rt *Router) handleGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	metrics.GatewayEventsTotal.WithLabelValues("guild_delete").Inc()
	if g.Unavailable {
		// Outage notification, not a removal.
		return
	}
	if rt.servers == nil {
		return
	}

	logger := slog.With("guild_id", g.ID)
	logger.Info("Left guild")
	metrics.GuildsLeft.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), guildEventTimeout)
	defer cancel()
	if err := rt.servers.SetActive(ctx, g.ID, false); err != nil {
		if errors.Is(err, domain.ErrServerNotFound) {
			logger.Debug("No server record to deactivate")
			return
		}
		logger.Error("Failed to deactivate server record", "error", err)
	}
}
