package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// NewSession creates a gateway session with the intents the bot needs.
// The connection is not opened; callers bind handlers first.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	return s, nil
}
