// Package mock provides test doubles for Discord command handler testing.
package mock

import "github.com/bwmarrin/discordgo"

// MessageSender records channel messages for test assertions. It satisfies
// the discord.MessageSender interface.
type MessageSender struct {
	// Sent records the content of every ChannelMessageSend call, in order.
	Sent []string

	// Channels records the channel ID of every call, in order.
	Channels []string

	// Err is returned by ChannelMessageSend when non-nil, allowing error
	// injection.
	Err error
}

// ChannelMessageSend records the message and returns the configured error.
func (m *MessageSender) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.Sent = append(m.Sent, content)
	m.Channels = append(m.Channels, channelID)
	if m.Err != nil {
		return nil, m.Err
	}
	return &discordgo.Message{ID: "mock-message", ChannelID: channelID, Content: content}, nil
}

// LastSent returns the most recently recorded message content, or "".
func (m *MessageSender) LastSent() string {
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1]
}

// Reset clears all recorded messages and the injected error.
func (m *MessageSender) Reset() {
	m.Sent = nil
	m.Channels = nil
	m.Err = nil
}
