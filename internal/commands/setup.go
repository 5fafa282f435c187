package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Suraj89011/discord-bot-template/internal/bot"
	"github.com/Suraj89011/discord-bot-template/internal/domain"
)

const maxPrefixLength = 5

var adminOnly = int64(discordgo.PermissionAdministrator)

// Setup builds the /setup command for per-server configuration. Discord
// hides it from non-administrators via the default member permissions.
func Setup(servers domain.ServerRepository) *bot.Command {
	return &bot.Command{
		Name:        "setup",
		Description: "Configure bot settings for this server",
		Permissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "view",
				Description: "View current server settings",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "prefix",
				Description: "Set the command prefix (for legacy commands)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "prefix",
						Description: "The new prefix",
						Required:    true,
						MaxLength:   maxPrefixLength,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "logs",
				Description: "Set the log channel",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "The channel for bot logs",
						Required:    true,
					},
				},
			},
		},
		Handler: func(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, r bot.Responder) error {
			if ic.GuildID == "" {
				return r.Reply("This command can only be used in a server.", true)
			}

			server, err := ensureServer(ctx, servers, s, ic.GuildID)
			if err != nil {
				return fmt.Errorf("ensure server %s: %w", ic.GuildID, err)
			}

			sub := subcommand(ic)
			switch sub.Name {
			case "view":
				return handleView(server, r)
			case "prefix":
				return handlePrefix(ctx, servers, ic.GuildID, sub, r)
			case "logs":
				return handleLogs(ctx, servers, ic.GuildID, sub, r)
			default:
				return fmt.Errorf("unknown setup subcommand %q", sub.Name)
			}
		},
	}
}

// ensureServer makes sure a row exists before settings are read or
// written, covering guilds the bot joined before it had a database.
func ensureServer(ctx context.Context, servers domain.ServerRepository, s *discordgo.Session, guildID string) (*domain.Server, error) {
	server, err := servers.GetByDiscordID(ctx, guildID)
	if err == nil {
		return server, nil
	}
	if !errors.Is(err, domain.ErrServerNotFound) {
		return nil, err
	}

	name := guildID
	memberCount := 0
	ownerID := ""
	if s != nil && s.State != nil {
		if guild, err := s.State.Guild(guildID); err == nil {
			name = guild.Name
			memberCount = guild.MemberCount
			ownerID = guild.OwnerID
		}
	}
	return servers.Upsert(ctx, guildID, name, memberCount, ownerID)
}

func handleView(server *domain.Server, r bot.Responder) error {
	prefix := "!"
	logChannel := "Not set"
	if server.Settings != nil {
		if server.Settings.Prefix != "" {
			prefix = server.Settings.Prefix
		}
		if server.Settings.LogChannelID != "" {
			logChannel = fmt.Sprintf("<#%s>", server.Settings.LogChannelID)
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "⚙️ Server Settings",
		Description: fmt.Sprintf("Settings for **%s**", server.Name),
		Color:       colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prefix", Value: fmt.Sprintf("`%s`", prefix), Inline: true},
			{Name: "Log Channel", Value: logChannel, Inline: true},
			{Name: "Member Count", Value: fmt.Sprintf("%d", server.MemberCount), Inline: true},
		},
	}
	return r.ReplyEmbed(embed, true)
}

func handlePrefix(ctx context.Context, servers domain.ServerRepository, guildID string, sub *discordgo.ApplicationCommandInteractionDataOption, r bot.Responder) error {
	prefix := requiredString(sub, "prefix")
	if prefix == "" || len(prefix) > maxPrefixLength {
		return r.Reply(fmt.Sprintf("Prefix must be between 1 and %d characters.", maxPrefixLength), true)
	}

	if _, err := servers.UpdateSettings(ctx, guildID, domain.SettingsUpdate{Prefix: &prefix}); err != nil {
		return fmt.Errorf("update prefix for %s: %w", guildID, err)
	}

	return r.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Prefix Updated",
		Description: fmt.Sprintf("Command prefix has been set to `%s`", prefix),
		Color:       colorGreen,
	}, true)
}

func handleLogs(ctx context.Context, servers domain.ServerRepository, guildID string, sub *discordgo.ApplicationCommandInteractionDataOption, r bot.Responder) error {
	channelID := requiredChannelID(sub, "channel")
	if channelID == "" {
		return r.Reply("A channel is required.", true)
	}

	if _, err := servers.UpdateSettings(ctx, guildID, domain.SettingsUpdate{LogChannelID: &channelID}); err != nil {
		return fmt.Errorf("update log channel for %s: %w", guildID, err)
	}

	return r.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Log Channel Updated",
		Description: fmt.Sprintf("Bot logs will now be sent to <#%s>", channelID),
		Color:       colorGreen,
	}, true)
}

// subcommand returns the invoked subcommand option. Discord guarantees
// exactly one for commands declared with subcommands only.
func subcommand(ic *discordgo.InteractionCreate) *discordgo.ApplicationCommandInteractionDataOption {
	opts := ic.ApplicationCommandData().Options
	if len(opts) == 0 {
		return &discordgo.ApplicationCommandInteractionDataOption{}
	}
	return opts[0]
}

func requiredString(sub *discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range sub.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

func requiredChannelID(sub *discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range sub.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionChannel {
			// ChannelValue(nil) resolves the ID without a state lookup.
			if ch := opt.ChannelValue(nil); ch != nil {
				return ch.ID
			}
		}
	}
	return ""
}
