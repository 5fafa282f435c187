package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Responder abstracts the two interaction response primitives Discord
// allows: one initial reply (or deferral), then follow-ups. Tracking
// the replied state here lets the dispatcher pick the right transmission
// for its failure notice.
type Responder interface {
	Reply(content string, ephemeral bool) error
	ReplyEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error
	// Defer acknowledges the interaction without content; the eventual
	// answer goes out via EditReply or Followup.
	Defer() error
	EditReply(content string, embeds []*discordgo.MessageEmbed) error
	Followup(content string, ephemeral bool) error
	// Replied reports whether an initial reply or deferral happened.
	Replied() bool
}

type discordResponder struct {
	session *discordgo.Session
	ic      *discordgo.InteractionCreate
	replied bool
}

func newDiscordResponder(s *discordgo.Session, ic *discordgo.InteractionCreate) Responder {
	return &discordResponder{session: s, ic: ic}
}

func (r *discordResponder) respond(resp *discordgo.InteractionResponse) error {
	if err := r.session.InteractionRespond(r.ic.Interaction, resp); err != nil {
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}
	r.replied = true
	return nil
}

func (r *discordResponder) Reply(content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func (r *discordResponder) ReplyEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func (r *discordResponder) Defer() error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (r *discordResponder) EditReply(content string, embeds []*discordgo.MessageEmbed) error {
	edit := &discordgo.WebhookEdit{Content: &content}
	if embeds != nil {
		edit.Embeds = &embeds
	}
	if _, err := r.session.InteractionResponseEdit(r.ic.Interaction, edit); err != nil {
		return fmt.Errorf("failed to edit interaction response: %w", err)
	}
	return nil
}

func (r *discordResponder) Followup(content string, ephemeral bool) error {
	params := &discordgo.WebhookParams{Content: content}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	if _, err := r.session.FollowupMessageCreate(r.ic.Interaction, false, params); err != nil {
		return fmt.Errorf("failed to send follow-up: %w", err)
	}
	return nil
}

func (r *discordResponder) Replied() bool {
	return r.replied
}
