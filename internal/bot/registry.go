package bot

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Suraj89011/discord-bot-template/internal/domain"
)

// HandlerFunc executes a slash command. Responses go through the
// Responder so the dispatcher can track reply/follow-up state.
type HandlerFunc func(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, r Responder) error

// Command is a registered slash command. Immutable once registered.
type Command struct {
	Name        string
	Description string
	// Cooldown is the per-user minimum interval between invocations.
	// Zero means the dispatcher default applies.
	Cooldown time.Duration
	Options  []*discordgo.ApplicationCommandOption
	// Permissions restricts who sees the command (Discord-side gate).
	Permissions *int64
	Handler     HandlerFunc
}

// Registry maps command names to commands. It is populated by explicit
// Register calls during startup and read-only afterwards, so lookups
// need no locking.
type Registry struct {
	byName map[string]*Command
	order  []*Command
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register stores a command, failing if the name is already taken.
func (r *Registry) Register(cmd *Command) error {
	if _, exists := r.byName[cmd.Name]; exists {
		return fmt.Errorf("register %q: %w", cmd.Name, domain.ErrDuplicateCommand)
	}
	r.byName[cmd.Name] = cmd
	r.order = append(r.order, cmd)
	return nil
}

// Lookup resolves a command by name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// All iterates over commands in registration order.
func (r *Registry) All() iter.Seq[*Command] {
	return func(yield func(*Command) bool) {
		for _, cmd := range r.order {
			if !yield(cmd) {
				return
			}
		}
	}
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.order)
}
