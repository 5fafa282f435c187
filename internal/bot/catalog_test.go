package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalog(t *testing.T) {
	registry := NewRegistry()
	adminPerm := int64(discordgo.PermissionAdministrator)

	require.NoError(t, registry.Register(&Command{
		Name:        "ping",
		Description: "Check bot latency and response time",
		Cooldown:    5 * time.Second,
	}))
	require.NoError(t, registry.Register(&Command{
		Name:        "setup",
		Description: "Configure bot settings for this server",
		Permissions: &adminPerm,
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "view", Description: "View current server settings"},
		},
	}))

	catalog := BuildCatalog(registry)

	require.Len(t, catalog, 2)
	assert.Equal(t, "ping", catalog[0].Name)
	assert.Equal(t, "Check bot latency and response time", catalog[0].Description)
	assert.Nil(t, catalog[0].DefaultMemberPermissions)

	assert.Equal(t, "setup", catalog[1].Name)
	require.NotNil(t, catalog[1].DefaultMemberPermissions)
	assert.Equal(t, adminPerm, *catalog[1].DefaultMemberPermissions)
	require.Len(t, catalog[1].Options, 1)
	assert.Equal(t, "view", catalog[1].Options[0].Name)
}

func TestBuildCatalog_Empty(t *testing.T) {
	catalog := BuildCatalog(NewRegistry())
	assert.Empty(t, catalog)
}
