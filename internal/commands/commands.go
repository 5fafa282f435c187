// Package commands contains the slash command constructors. Each
// constructor returns an immutable bot.Command wired to its
// collaborators; registration order determines catalog order.
package commands

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/Suraj89011/discord-bot-template/internal/bot"
	"github.com/Suraj89011/discord-bot-template/internal/domain"
)

// Embed colors, matching Discord's blurple plus traffic-light states.
const (
	colorBlurple = 0x5865f2
	colorGreen   = 0x00ff00
	colorYellow  = 0xffff00
	colorRed     = 0xff0000
)

// Pinger reports dependency health. Both the pgx pool wrapper and the
// redis client satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsSource provides aggregate statistics for /status. The API
// client satisfies it; when the API service is not configured the
// status command falls back to direct repository counts.
type StatsSource interface {
	GetStats(ctx context.Context) (*domain.StatsOverview, error)
}

// Deps bundles the collaborators the command set needs.
type Deps struct {
	Servers domain.ServerRepository
	Users   domain.UserRepository
	DB      Pinger
	Redis   Pinger
	// Stats may be nil when no API service is configured.
	Stats StatsSource
	Clock clockwork.Clock
}

// RegisterAll registers the full command set. Returns
// domain.ErrDuplicateCommand (wrapped) if a name collides.
func RegisterAll(registry *bot.Registry, deps Deps) error {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	for _, cmd := range []*bot.Command{
		Ping(),
		Help(registry),
		Status(registry, deps, clock),
		Setup(deps.Servers),
	} {
		if err := registry.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}
