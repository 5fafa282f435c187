package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"

	"github.com/Suraj89011/discord-bot-template/internal/domain"
	"github.com/Suraj89011/discord-bot-template/internal/metrics"
)

// DefaultCooldown applies to commands that declare none.
const DefaultCooldown = 3 * time.Second

const genericFailureNotice = "There was an error executing this command."

// usageRecordTimeout bounds the fire-and-forget usage insert.
const usageRecordTimeout = 5 * time.Second

// Dispatcher resolves inbound interactions to registered commands,
// enforces cooldowns, and executes handlers with error isolation.
// Handler failures never propagate out of Dispatch.
type Dispatcher struct {
	registry  *Registry
	cooldowns *CooldownLedger
	usage     domain.UsageRepository
	clock     clockwork.Clock

	// newResponder is swapped in tests to capture outbound responses.
	newResponder func(s *discordgo.Session, ic *discordgo.InteractionCreate) Responder
}

func NewDispatcher(registry *Registry, cooldowns *CooldownLedger, usage domain.UsageRepository, clock clockwork.Clock) *Dispatcher {
	return &Dispatcher{
		registry:     registry,
		cooldowns:    cooldowns,
		usage:        usage,
		clock:        clock,
		newResponder: newDiscordResponder,
	}
}

// Dispatch handles a single interaction event. Safe to call from
// concurrent gateway callbacks; per-key serialization happens inside
// the cooldown ledger.
func (d *Dispatcher) Dispatch(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
	case discordgo.InteractionMessageComponent:
		slog.Debug("Component interaction received", "custom_id", ic.MessageComponentData().CustomID)
		return
	case discordgo.InteractionModalSubmit:
		slog.Debug("Modal submitted", "custom_id", ic.ModalSubmitData().CustomID)
		return
	default:
		return
	}

	name := ic.ApplicationCommandData().Name
	userID := interactionUserID(ic)

	cmd, ok := d.registry.Lookup(name)
	if !ok {
		// Soft-ignore: no user response. Usually client/catalog skew
		// right after a deploy.
		slog.Warn("Unknown command", "command", name, "user_id", userID)
		metrics.CommandExecutionsTotal.WithLabelValues(name, "unknown").Inc()
		return
	}

	cooldown := cmd.Cooldown
	if cooldown == 0 {
		cooldown = DefaultCooldown
	}

	r := d.newResponder(s, ic)

	allowed, remaining := d.cooldowns.TryConsume(name, userID, cooldown)
	if !allowed {
		metrics.CommandExecutionsTotal.WithLabelValues(name, "cooldown").Inc()
		msg := fmt.Sprintf("Please wait %.1f more seconds before using `/%s` again.", remaining.Seconds(), name)
		if err := r.Reply(msg, true); err != nil {
			slog.Error("Failed to send cooldown notice", "command", name, "error", err)
		}
		return
	}

	slog.Info("Command executed", "command", name, "user_id", userID, "guild_id", ic.GuildID)
	d.recordUsage(name, userID, ic.GuildID)

	start := d.clock.Now()
	err := d.execute(context.Background(), s, ic, r, cmd)
	metrics.CommandDuration.WithLabelValues(name).Observe(d.clock.Since(start).Seconds())

	if err != nil {
		metrics.CommandExecutionsTotal.WithLabelValues(name, "failed").Inc()
		slog.Error("Command execution failed", "command", name, "user_id", userID, "error", err)
		d.sendFailureNotice(r, name)
		return
	}
	metrics.CommandExecutionsTotal.WithLabelValues(name, "executed").Inc()
}

// execute runs the handler, converting panics into errors so a broken
// command cannot take down the process.
func (d *Dispatcher) execute(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate, r Responder, cmd *Command) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("handler panicked: %v\n%s", v, debug.Stack())
		}
	}()
	return cmd.Handler(ctx, s, ic, r)
}

// sendFailureNotice surfaces exactly one generic failure message,
// using a follow-up when the handler already replied or deferred.
func (d *Dispatcher) sendFailureNotice(r Responder, command string) {
	var err error
	if r.Replied() {
		err = r.Followup(genericFailureNotice, true)
	} else {
		err = r.Reply(genericFailureNotice, true)
	}
	if err != nil {
		slog.Error("Failed to send failure notice", "command", command, "error", err)
	}
}

func (d *Dispatcher) recordUsage(command, userID, guildID string) {
	if d.usage == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageRecordTimeout)
		defer cancel()
		if err := d.usage.Record(ctx, command, userID, guildID); err != nil {
			slog.Warn("Failed to record command usage", "command", command, "error", err)
		}
	}()
}

// interactionUserID extracts the invoking user. Guild interactions
// carry a Member, DM interactions a bare User.
func interactionUserID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}
