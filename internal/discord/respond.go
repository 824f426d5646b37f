package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// MessageSender is the subset of *discordgo.Session the command handlers use
// to send channel messages. Tests substitute a recording implementation.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Reply sends a text message to the channel the triggering message came
// from. Send failures are logged, not returned; a dropped reply should not
// abort command handling.
func Reply(s MessageSender, m *discordgo.MessageCreate, content string) {
	if _, err := s.ChannelMessageSend(m.ChannelID, content); err != nil {
		slog.Warn("discord: failed to send reply", "channel", m.ChannelID, "err", err)
	}
}

// ReplyError reports err to the channel as a formatted error message.
func ReplyError(s MessageSender, m *discordgo.MessageCreate, err error) {
	Reply(s, m, fmt.Sprintf("Error: %v", err))
}
