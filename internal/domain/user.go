package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	DiscordID     string    `json:"discordId"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type UserRepository interface {
	Upsert(ctx context.Context, discordID, username, discriminator, avatar string) (*User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*User, error)
	// List returns users ordered by creation time (newest first) together
	// with the total row count for pagination.
	List(ctx context.Context, page, limit int) ([]User, int, error)
	Update(ctx context.Context, discordID, username, discriminator, avatar string) (*User, error)
	Delete(ctx context.Context, discordID string) error
	Count(ctx context.Context) (int, error)
}
