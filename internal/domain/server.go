package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Server is a Discord guild the bot has been added to. Removal from a
// guild is a soft delete: the row stays with IsActive=false.
type Server struct {
	ID          uuid.UUID       `json:"id"`
	DiscordID   string          `json:"discordId"`
	Name        string          `json:"name"`
	MemberCount int             `json:"memberCount"`
	OwnerID     string          `json:"ownerId,omitempty"`
	IsActive    bool            `json:"isActive"`
	Settings    *ServerSettings `json:"settings,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ServerSettings struct {
	ServerID     uuid.UUID `json:"serverId"`
	Prefix       string    `json:"prefix"`
	LogChannelID string    `json:"logChannelId,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SettingsUpdate carries partial settings changes; nil fields are left
// untouched.
type SettingsUpdate struct {
	Prefix       *string
	LogChannelID *string
}

type ServerRepository interface {
	// Upsert creates or refreshes a server row and reactivates it. A
	// default settings row is created alongside new servers.
	Upsert(ctx context.Context, discordID, name string, memberCount int, ownerID string) (*Server, error)
	GetByDiscordID(ctx context.Context, discordID string) (*Server, error)
	// List filters by activity when active is non-nil.
	List(ctx context.Context, page, limit int, active *bool) ([]Server, int, error)
	SetActive(ctx context.Context, discordID string, active bool) error
	UpdateSettings(ctx context.Context, discordID string, update SettingsUpdate) (*ServerSettings, error)
	Count(ctx context.Context, active *bool) (int, error)
}
