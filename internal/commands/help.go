package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Suraj89011/discord-bot-template/internal/bot"
)

// Help builds the /help command. It reads from the same registry it is
// registered into, so it always reflects the full command set.
func Help(registry *bot.Registry) *bot.Command {
	return &bot.Command{
		Name:        "help",
		Description: "Display available commands and information",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "command",
				Description: "Get help for a specific command",
				Required:    false,
			},
		},
		Handler: func(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, r bot.Responder) error {
			if name := stringOption(ic, "command"); name != "" {
				return helpForCommand(registry, name, r)
			}
			return helpOverview(registry, r)
		},
	}
}

func helpForCommand(registry *bot.Registry, name string, r bot.Responder) error {
	cmd, ok := registry.Lookup(name)
	if !ok {
		return r.Reply(fmt.Sprintf("Command `%s` not found.", name), true)
	}

	cooldown := cmd.Cooldown
	if cooldown == 0 {
		cooldown = bot.DefaultCooldown
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Command: /%s", cmd.Name),
		Description: cmd.Description,
		Color:       colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Cooldown", Value: fmt.Sprintf("%g seconds", cooldown.Seconds()), Inline: true},
		},
	}

	if len(cmd.Options) > 0 {
		lines := make([]string, 0, len(cmd.Options))
		for _, opt := range cmd.Options {
			lines = append(lines, fmt.Sprintf("`%s` - %s", opt.Name, opt.Description))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Options",
			Value: strings.Join(lines, "\n"),
		})
	}

	return r.ReplyEmbed(embed, true)
}

func helpOverview(registry *bot.Registry, r bot.Responder) error {
	var lines []string
	for cmd := range registry.All() {
		lines = append(lines, fmt.Sprintf("`/%s` - %s", cmd.Name, cmd.Description))
	}
	listing := strings.Join(lines, "\n")
	if listing == "" {
		listing = "No commands available"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Commands",
		Description: "Here are all available commands:",
		Color:       colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Commands", Value: listing},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /help <command> for more info on a specific command",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return r.ReplyEmbed(embed, true)
}

// stringOption extracts a top-level string option by name, or "" when
// absent.
func stringOption(ic *discordgo.InteractionCreate, name string) string {
	for _, opt := range ic.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}
