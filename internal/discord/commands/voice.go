package commands

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/reiyw/ttsbot/internal/discord"
	"github.com/reiyw/ttsbot/internal/observe"
)

// Player controls speech playback for one guild at a time.
type Player interface {
	SetMuted(guildID string, muted bool) bool
	Stop(guildID string)
}

// VoiceDeps bundles the collaborators of the voice channel commands.
type VoiceDeps struct {
	Tracker *discord.ChannelTracker
	Player  Player
	Metrics *observe.Metrics
}

// RegisterVoice registers the join, leave, mute, unmute, stop, and ping
// commands.
func RegisterVoice(r *discord.CommandRouter, deps VoiceDeps) {
	r.Register("join", deps.handleJoin)
	r.Register("leave", adapt(deps.handleLeave))
	r.Register("mute", adapt(deps.handleMute))
	r.Register("unmute", adapt(deps.handleUnmute))
	r.Register("stop", adapt(deps.handleStop))
	r.Register("ping", adapt(deps.handlePing))
}

// handleJoin connects to the author's current voice channel. Join is the one
// handler that needs the full session: voice state lookup and the gateway
// voice handshake.
func (d VoiceDeps) handleJoin(s *discordgo.Session, m *discordgo.MessageCreate, _ []string) {
	ctx := context.Background()

	vs, err := s.State.VoiceState(m.GuildID, m.Author.ID)
	if err != nil || vs == nil || vs.ChannelID == "" {
		discord.Reply(s, m, "Not in a voice channel")
		d.Metrics.RecordCommand(ctx, "join", "error")
		return
	}

	conn, err := s.ChannelVoiceJoin(m.GuildID, vs.ChannelID, false, true)
	if err != nil {
		slog.Warn("commands: voice join failed", "guild", m.GuildID, "channel", vs.ChannelID, "err", err)
		discord.ReplyError(s, m, err)
		d.Metrics.RecordCommand(ctx, "join", "error")
		return
	}

	// Re-joining (e.g. following the user to another channel) replaces the
	// tracked session; the gauge counts guilds, so it only moves on a fresh
	// join.
	if d.Tracker.Set(m.GuildID, vs.ChannelID, conn) {
		d.Metrics.VoiceChannelsJoined.Add(ctx, 1)
	}
	d.Metrics.RecordCommand(ctx, "join", "ok")
	slog.Info("commands: joined voice channel", "guild", m.GuildID, "channel", vs.ChannelID)
}

// handleLeave disconnects from the guild's voice channel.
func (d VoiceDeps) handleLeave(s discord.MessageSender, m *discordgo.MessageCreate, _ []string) {
	ctx := context.Background()

	sess, ok := d.Tracker.Get(m.GuildID)
	if !ok {
		discord.Reply(s, m, "Not in a voice channel")
		d.Metrics.RecordCommand(ctx, "leave", "error")
		return
	}

	if sess.Conn != nil {
		if err := sess.Conn.Disconnect(); err != nil {
			slog.Warn("commands: voice disconnect failed", "guild", m.GuildID, "err", err)
		}
	}
	d.Tracker.Remove(m.GuildID)
	d.Metrics.VoiceChannelsJoined.Add(ctx, -1)
	d.Metrics.RecordCommand(ctx, "leave", "ok")
	discord.Reply(s, m, "Left voice channel")
}

func (d VoiceDeps) handleMute(s discord.MessageSender, m *discordgo.MessageCreate, _ []string) {
	if !d.Player.SetMuted(m.GuildID, true) {
		discord.Reply(s, m, "Already muted")
		return
	}
	d.Metrics.RecordCommand(context.Background(), "mute", "ok")
	discord.Reply(s, m, "Now muted")
}

func (d VoiceDeps) handleUnmute(s discord.MessageSender, m *discordgo.MessageCreate, _ []string) {
	if !d.Player.SetMuted(m.GuildID, false) {
		discord.Reply(s, m, "Already unmuted")
		return
	}
	d.Metrics.RecordCommand(context.Background(), "unmute", "ok")
	discord.Reply(s, m, "Unmuted")
}

// handleStop cancels the guild's playback in flight without leaving the
// channel.
func (d VoiceDeps) handleStop(_ discord.MessageSender, m *discordgo.MessageCreate, _ []string) {
	d.Player.Stop(m.GuildID)
	d.Metrics.RecordCommand(context.Background(), "stop", "ok")
}

func (d VoiceDeps) handlePing(s discord.MessageSender, m *discordgo.MessageCreate, _ []string) {
	d.Metrics.RecordCommand(context.Background(), "ping", "ok")
	discord.Reply(s, m, "Pong!")
}
