package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// BuildCatalog serializes the registry into the application command
// payloads Discord expects, in registration order.
func BuildCatalog(registry *Registry) []*discordgo.ApplicationCommand {
	catalog := make([]*discordgo.ApplicationCommand, 0, registry.Len())
	for cmd := range registry.All() {
		catalog = append(catalog, &discordgo.ApplicationCommand{
			Name:                     cmd.Name,
			Description:              cmd.Description,
			Options:                  cmd.Options,
			DefaultMemberPermissions: cmd.Permissions,
		})
	}
	return catalog
}

// PublishCatalog bulk-overwrites the registered command set. With a
// guild ID the update is scoped to that guild and propagates near
// instantly; globally Discord may take up to an hour. Failures leave
// the previously published catalog in place.
func PublishCatalog(s *discordgo.Session, registry *Registry, appID, guildID string) error {
	catalog := BuildCatalog(registry)
	if len(catalog) == 0 {
		slog.Warn("No commands to register")
		return nil
	}

	if _, err := s.ApplicationCommandBulkOverwrite(appID, guildID, catalog); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	if guildID != "" {
		slog.Info("Registered guild commands", "count", len(catalog), "guild_id", guildID)
	} else {
		slog.Info("Registered global commands", "count", len(catalog))
	}
	return nil
}
