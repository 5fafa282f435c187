package commands

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"

	"github.com/Suraj89011/discord-bot-template/internal/bot"
	"github.com/Suraj89011/discord-bot-template/internal/version"
)

// Status builds the /status command. The handler defers its reply
// because the health checks can take longer than Discord's 3-second
// acknowledgement window.
func Status(registry *bot.Registry, deps Deps, clock clockwork.Clock) *bot.Command {
	startedAt := clock.Now()

	return &bot.Command{
		Name:        "status",
		Description: "Show bot status and system information",
		Cooldown:    10 * time.Second,
		Handler: func(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, r bot.Responder) error {
			if err := r.Defer(); err != nil {
				return err
			}

			embed := &discordgo.MessageEmbed{
				Title: "📊 Bot Status",
				Color: colorGreen,
				Fields: []*discordgo.MessageEmbedField{
					botInfoField(ctx, s, registry, clock.Since(startedAt), deps),
					systemField(),
					servicesField(ctx, s, deps),
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("version %s", version.Get().Version)},
			}
			return r.EditReply("", []*discordgo.MessageEmbed{embed})
		},
	}
}

func botInfoField(ctx context.Context, s *discordgo.Session, registry *bot.Registry, uptime time.Duration, deps Deps) *discordgo.MessageEmbedField {
	guilds := 0
	if s != nil && s.State != nil {
		s.State.RLock()
		guilds = len(s.State.Guilds)
		s.State.RUnlock()
	}

	lines := []string{
		fmt.Sprintf("**Uptime:** %s", formatUptime(uptime)),
		fmt.Sprintf("**Guilds:** %d", guilds),
		fmt.Sprintf("**Commands:** %d", registry.Len()),
	}

	if users, servers, ok := fetchCounts(ctx, deps); ok {
		lines = append(lines,
			fmt.Sprintf("**Known Users:** %d", users),
			fmt.Sprintf("**Known Servers:** %d", servers),
		)
	}

	return &discordgo.MessageEmbedField{
		Name:   "🤖 Bot Info",
		Value:  strings.Join(lines, "\n"),
		Inline: true,
	}
}

// fetchCounts prefers the API service so /status reflects the same
// numbers the stats endpoint serves; it falls back to direct repository
// counts when no client is configured.
func fetchCounts(ctx context.Context, deps Deps) (users, servers int, ok bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if deps.Stats != nil {
		overview, err := deps.Stats.GetStats(ctx)
		if err == nil {
			return overview.Users, overview.Servers.Total, true
		}
		slog.Warn("stats fetch via api failed, falling back to repositories", "error", err)
	}

	if deps.Users == nil || deps.Servers == nil {
		return 0, 0, false
	}
	users, err := deps.Users.Count(ctx)
	if err != nil {
		slog.Warn("user count failed", "error", err)
		return 0, 0, false
	}
	servers, err = deps.Servers.Count(ctx, nil)
	if err != nil {
		slog.Warn("server count failed", "error", err)
		return 0, 0, false
	}
	return users, servers, true
}

func systemField() *discordgo.MessageEmbedField {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	lines := []string{
		fmt.Sprintf("**Platform:** %s/%s", runtime.GOOS, runtime.GOARCH),
		fmt.Sprintf("**Go:** %s", runtime.Version()),
		fmt.Sprintf("**Memory:** %d/%d MB", mem.HeapAlloc/1024/1024, mem.HeapSys/1024/1024),
		fmt.Sprintf("**Goroutines:** %d", runtime.NumGoroutine()),
	}
	return &discordgo.MessageEmbedField{
		Name:   "💻 System",
		Value:  strings.Join(lines, "\n"),
		Inline: true,
	}
}

func servicesField(ctx context.Context, s *discordgo.Session, deps Deps) *discordgo.MessageEmbedField {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	lines := []string{
		fmt.Sprintf("**Database:** %s", serviceMark(pingService(ctx, deps.DB))),
		fmt.Sprintf("**Redis:** %s", serviceMark(pingService(ctx, deps.Redis))),
		fmt.Sprintf("**Discord:** %s", serviceMark(s != nil && s.DataReady)),
	}
	return &discordgo.MessageEmbedField{
		Name:  "🔌 Services",
		Value: strings.Join(lines, "\n"),
	}
}

func pingService(ctx context.Context, p Pinger) bool {
	return p != nil && p.Ping(ctx) == nil
}

func serviceMark(healthy bool) string {
	if healthy {
		return "✅ Connected"
	}
	return "❌ Disconnected"
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))
	return strings.Join(parts, " ")
}
