// Package commands implements the bot's text commands: voice option
// management (set, preset, engine) and voice channel control (join, leave,
// mute, unmute, stop, ping).
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/reiyw/ttsbot/internal/discord"
	"github.com/reiyw/ttsbot/internal/observe"
	"github.com/reiyw/ttsbot/pkg/tts"
	"github.com/reiyw/ttsbot/pkg/tts/voicetext"
	"github.com/reiyw/ttsbot/pkg/tts/voicevox"
)

// storeTimeout bounds one option-store write.
const storeTimeout = 10 * time.Second

// OptionStore reads and durably writes per-user options.
type OptionStore interface {
	Get(userID uint64) tts.Options
	Set(ctx context.Context, userID uint64, opts tts.Options) error
}

// TTSDeps bundles the collaborators of the option commands.
type TTSDeps struct {
	Store   OptionStore
	Metrics *observe.Metrics
}

// RegisterTTS registers the set, preset, and engine commands.
func RegisterTTS(r *discord.CommandRouter, deps TTSDeps) {
	r.Register("set", adapt(deps.handleSet))
	r.Register("preset", adapt(deps.handlePreset))
	r.Register("engine", adapt(deps.handleEngine))
}

// adapt narrows the router's session parameter to the [discord.MessageSender]
// seam the handlers are written against, so tests can record replies.
func adapt(h func(discord.MessageSender, *discordgo.MessageCreate, []string)) discord.HandlerFunc {
	return func(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
		h(s, m, args)
	}
}

// handleSet parses key=value tokens into validated options and stores them.
func (d TTSDeps) handleSet(s discord.MessageSender, m *discordgo.MessageCreate, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if len(args) == 0 {
		discord.Reply(s, m, setUsage())
		d.Metrics.RecordCommand(ctx, "set", "error")
		return
	}
	engine, err := tts.ParseEngine(args[0])
	if err != nil {
		discord.Reply(s, m, setUsage())
		d.Metrics.RecordCommand(ctx, "set", "error")
		return
	}

	opts, err := tts.BuildOptions(engine, args[1:])
	if err != nil {
		discord.Reply(s, m, err.Error())
		d.Metrics.RecordCommand(ctx, "set", "error")
		return
	}

	if !d.store(ctx, s, m, opts) {
		d.Metrics.RecordCommand(ctx, "set", "error")
		return
	}
	discord.Reply(s, m, fmt.Sprintf("%s Updated your voice settings.", m.Author.Mention()))
	d.Metrics.RecordCommand(ctx, "set", "ok")
}

// handlePreset stores a named preset's canonical options.
func (d TTSDeps) handlePreset(s discord.MessageSender, m *discordgo.MessageCreate, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if len(args) == 0 {
		discord.Reply(s, m, presetUsage())
		d.Metrics.RecordCommand(ctx, "preset", "error")
		return
	}
	preset, err := tts.ParsePreset(args[0])
	if err != nil {
		discord.Reply(s, m, presetUsage())
		d.Metrics.RecordCommand(ctx, "preset", "error")
		return
	}

	if !d.store(ctx, s, m, preset.Options()) {
		d.Metrics.RecordCommand(ctx, "preset", "error")
		return
	}
	discord.Reply(s, m, fmt.Sprintf("%s Applied preset %s.", m.Author.Mention(), preset))
	d.Metrics.RecordCommand(ctx, "preset", "ok")
}

// handleEngine is informational only: it lists every engine with its
// speakers, or one engine's API endpoint and speakers when named. It never
// touches the option store; switching voices goes through set or preset.
func (d TTSDeps) handleEngine(s discord.MessageSender, m *discordgo.MessageCreate, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		discord.Reply(s, m, engineListing())
		d.Metrics.RecordCommand(ctx, "engine", "ok")
		return
	}
	engine, err := tts.ParseEngine(args[0])
	if err != nil {
		discord.Reply(s, m, engineUsage())
		d.Metrics.RecordCommand(ctx, "engine", "error")
		return
	}

	discord.Reply(s, m, engineInfo(engine))
	d.Metrics.RecordCommand(ctx, "engine", "ok")
}

// store writes opts for the message author, replying on failure. Reports
// whether the write succeeded.
func (d TTSDeps) store(ctx context.Context, s discord.MessageSender, m *discordgo.MessageCreate, opts tts.Options) bool {
	userID, err := strconv.ParseUint(m.Author.ID, 10, 64)
	if err != nil {
		slog.Warn("commands: unparseable author ID", "author", m.Author.ID, "err", err)
		discord.ReplyError(s, m, err)
		return false
	}
	if err := d.Store.Set(ctx, userID, opts); err != nil {
		slog.Warn("commands: option store write failed", "user", userID, "err", err)
		d.Metrics.RecordStoreWrite(ctx, "error")
		discord.ReplyError(s, m, err)
		return false
	}
	d.Metrics.RecordStoreWrite(ctx, "ok")
	return true
}

// engineListing enumerates every engine with its speakers.
func engineListing() string {
	var b strings.Builder
	b.WriteString(engineUsage())
	for _, engine := range tts.Engines() {
		b.WriteString(fmt.Sprintf("\n**%s**: ", engine))
		b.WriteString(engineSpeakers(engine))
	}
	return b.String()
}

// engineInfo describes one engine: its API endpoint and available speakers.
func engineInfo(engine tts.Engine) string {
	switch engine {
	case tts.EngineVoiceText:
		return fmt.Sprintf("API: https://cloud.voicetext.jp/webapi/docs/api\nAvailable speakers: %s",
			engineSpeakers(engine))
	case tts.EngineVoiceVox:
		return fmt.Sprintf("Official: https://voicevox.hiroshiba.jp\nAPI: https://voicevox.su-shiki.com\nAvailable speakers: %s",
			engineSpeakers(engine))
	}
	return engineUsage()
}

func engineSpeakers(engine tts.Engine) string {
	switch engine {
	case tts.EngineVoiceText:
		return joinSpeakers(voicetext.AllSpeakers())
	case tts.EngineVoiceVox:
		return joinSpeakers(voicevox.AllSpeakers())
	}
	return ""
}

func joinSpeakers[S fmt.Stringer](speakers []S) string {
	names := make([]string, len(speakers))
	for i, s := range speakers {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

func setUsage() string {
	return "Usage: `.set {voicetext|voicevox} [key=value...]`"
}

func engineUsage() string {
	return "Usage: `.engine [voicetext|voicevox]`"
}

func presetUsage() string {
	return "Usage: `.preset <name>`\nAvailable presets: takuya, munou"
}
