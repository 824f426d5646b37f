package discord

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// synthesisTimeout bounds one synthesis round trip.
const synthesisTimeout = 30 * time.Second

// speak reads a chat message aloud when every gate passes: the bot is in a
// voice channel of the message's guild, the author is in that same channel,
// and the text is Japanese.
func (b *Bot) speak(s *discordgo.Session, m *discordgo.MessageCreate) {
	sess, ok := b.tracker.Get(m.GuildID)
	if !ok {
		return
	}
	if b.deps.Player.Muted(m.GuildID) {
		return
	}

	vs, err := s.State.VoiceState(m.GuildID, m.Author.ID)
	if err != nil || vs == nil || vs.ChannelID != sess.ChannelID {
		return
	}

	userID, err := strconv.ParseUint(m.Author.ID, 10, 64)
	if err != nil {
		slog.Warn("discord: unparseable author ID", "author", m.Author.ID, "err", err)
		return
	}

	text := strings.TrimSpace(m.ContentWithMentionsReplaced())
	if text == "" {
		return
	}
	if !b.deps.Detector.IsJapanese(text) {
		return
	}

	opts := b.deps.Store.Get(userID)

	ctx, cancel := context.WithTimeout(context.Background(), synthesisTimeout)
	defer cancel()

	start := time.Now()
	wav, err := b.deps.TTS.Request(ctx, text, opts)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		b.deps.Metrics.RecordSynthesis(ctx, opts.Engine().String(), "error", elapsed)
		slog.Warn("discord: synthesis failed", "guild", m.GuildID, "err", err)
		return
	}
	b.deps.Metrics.RecordSynthesis(ctx, opts.Engine().String(), "ok", elapsed)

	if err := b.deps.Player.Play(ctx, m.GuildID, sess.Conn, wav); err != nil {
		slog.Warn("discord: playback failed", "guild", m.GuildID, "err", err)
		return
	}
	b.deps.Metrics.MessagesSpoken.Add(ctx, 1)
}
