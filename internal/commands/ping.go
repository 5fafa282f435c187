package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Suraj89011/discord-bot-template/internal/bot"
)

// Ping builds the /ping command. It replies immediately and then edits
// the reply with the measured round-trip, so the latency figure covers
// a real Discord API call rather than local clock arithmetic.
func Ping() *bot.Command {
	return &bot.Command{
		Name:        "ping",
		Description: "Check bot latency and response time",
		Cooldown:    5 * time.Second,
		Handler: func(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, r bot.Responder) error {
			start := time.Now()
			if err := r.Reply("Pinging...", false); err != nil {
				return err
			}
			latency := time.Since(start)

			var heartbeat time.Duration
			if s != nil {
				heartbeat = s.HeartbeatLatency()
			}

			embed := &discordgo.MessageEmbed{
				Title: "🏓 Pong!",
				Color: latencyColor(latency),
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Bot Latency", Value: fmt.Sprintf("%dms", latency.Milliseconds()), Inline: true},
					{Name: "API Latency", Value: fmt.Sprintf("%dms", heartbeat.Milliseconds()), Inline: true},
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			}
			return r.EditReply("", []*discordgo.MessageEmbed{embed})
		},
	}
}

func latencyColor(latency time.Duration) int {
	switch {
	case latency < 200*time.Millisecond:
		return colorGreen
	case latency < 500*time.Millisecond:
		return colorYellow
	default:
		return colorRed
	}
}
