package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// onVoiceStateUpdate leaves the voice channel when the last human member is
// gone. Every state change in a tracked guild triggers a recount; the event
// payload itself carries too little to know who remains.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, vsu *discordgo.VoiceStateUpdate) {
	sess, ok := b.tracker.Get(vsu.GuildID)
	if !ok {
		return
	}

	if humansInChannel(s, vsu.GuildID, sess.ChannelID) > 0 {
		return
	}

	if sess.Conn != nil {
		if err := sess.Conn.Disconnect(); err != nil {
			slog.Warn("discord: failed to leave empty voice channel", "guild", vsu.GuildID, "err", err)
		}
	}
	b.tracker.Remove(vsu.GuildID)
	b.deps.Metrics.VoiceChannelsJoined.Add(context.Background(), -1)
	slog.Info("discord: left empty voice channel", "guild", vsu.GuildID, "channel", sess.ChannelID)
}

// humansInChannel counts non-bot members currently in a voice channel.
func humansInChannel(s *discordgo.Session, guildID, channelID string) int {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		return 0
	}

	count := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != channelID {
			continue
		}
		if vs.UserID == s.State.User.ID {
			continue
		}
		if member, err := s.State.Member(guildID, vs.UserID); err == nil && member.User != nil && member.User.Bot {
			continue
		}
		count++
	}
	return count
}
