package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// VoiceSession is the bot's presence in one guild's voice channel.
type VoiceSession struct {
	ChannelID string
	Conn      *discordgo.VoiceConnection
}

// ChannelTracker records which voice channel the bot occupies per guild.
// Safe for concurrent use.
type ChannelTracker struct {
	mu       sync.RWMutex
	sessions map[string]VoiceSession
}

// NewChannelTracker creates an empty tracker.
func NewChannelTracker() *ChannelTracker {
	return &ChannelTracker{sessions: make(map[string]VoiceSession)}
}

// Set records the bot's voice session for a guild, replacing any previous
// one. It reports whether the guild was previously untracked, so callers can
// distinguish a fresh join from a channel move.
func (t *ChannelTracker) Set(guildID, channelID string, conn *discordgo.VoiceConnection) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, existed := t.sessions[guildID]
	t.sessions[guildID] = VoiceSession{ChannelID: channelID, Conn: conn}
	return !existed
}

// Get returns the guild's voice session, if any.
func (t *ChannelTracker) Get(guildID string) (VoiceSession, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sess, ok := t.sessions[guildID]
	return sess, ok
}

// Remove forgets the guild's voice session.
func (t *ChannelTracker) Remove(guildID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, guildID)
}

// Len reports the number of guilds with an active voice session.
func (t *ChannelTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}
