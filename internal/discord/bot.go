// Package discord provides the Discord bot layer: it owns the
// discordgo.Session lifecycle, routes prefixed text commands to registered
// handlers, reads eligible chat messages aloud, and leaves voice channels
// that empty out.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/reiyw/ttsbot/internal/observe"
	"github.com/reiyw/ttsbot/pkg/tts"
)

// Config holds Discord bot configuration.
type Config struct {
	// Token is the Discord bot token.
	Token string

	// CommandPrefix marks a chat message as a command (e.g. ".").
	CommandPrefix string
}

// OptionSource yields a user's synthesis options.
type OptionSource interface {
	Get(userID uint64) tts.Options
}

// Synthesizer turns text into audio bytes for a user's options.
type Synthesizer interface {
	Request(ctx context.Context, text string, opts tts.Options) ([]byte, error)
}

// LanguageGate decides whether a message should be spoken.
type LanguageGate interface {
	IsJapanese(text string) bool
}

// SpeechPlayer streams synthesized audio into a voice connection. State is
// per guild: muting one guild never silences another.
type SpeechPlayer interface {
	Play(ctx context.Context, guildID string, vc *discordgo.VoiceConnection, wav []byte) error
	Muted(guildID string) bool
}

// Deps bundles the collaborators the bot needs to speak messages.
type Deps struct {
	Store    OptionSource
	TTS      Synthesizer
	Detector LanguageGate
	Player   SpeechPlayer
	Metrics  *observe.Metrics
}

// Bot owns the Discord gateway connection, the command router, and the
// per-guild voice channel tracker.
type Bot struct {
	session *discordgo.Session
	router  *CommandRouter
	tracker *ChannelTracker
	prefix  string
	deps    Deps

	closeOnce sync.Once
}

// New creates a Bot and connects to the Discord gateway. Command handlers
// should be registered on [Bot.Router] before messages arrive; register them
// before calling New returns to the event loop.
func New(_ context.Context, cfg Config, deps Deps) (*Bot, error) {
	if deps.Metrics == nil {
		deps.Metrics = observe.DefaultMetrics()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent

	b := &Bot{
		session: session,
		router:  NewCommandRouter(),
		tracker: NewChannelTracker(),
		prefix:  cfg.CommandPrefix,
		deps:    deps,
	}

	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onVoiceStateUpdate)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("discord: open session: %w", err)
	}

	return b, nil
}

// Router returns the command router for registering handlers.
func (b *Bot) Router() *CommandRouter {
	return b.router
}

// Tracker returns the per-guild voice channel tracker.
func (b *Bot) Tracker() *ChannelTracker {
	return b.tracker
}

// Session returns the underlying discordgo session.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// Ready reports whether the gateway session has received its Ready event.
// Shaped as a readiness probe for the health endpoint.
func (b *Bot) Ready(_ context.Context) error {
	if !b.session.DataReady {
		return errors.New("discord: gateway not ready")
	}
	return nil
}

// Run blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	slog.Info("discord bot running",
		"user", b.session.State.User.Username,
		"prefix", b.prefix,
	)
	<-ctx.Done()
	return ctx.Err()
}

// Close leaves all voice channels and disconnects from Discord.
func (b *Bot) Close() error {
	var closeErr error
	b.closeOnce.Do(func() {
		for _, guildID := range b.connectedGuilds() {
			if sess, ok := b.tracker.Get(guildID); ok && sess.Conn != nil {
				if err := sess.Conn.Disconnect(); err != nil {
					slog.Warn("discord: failed to leave voice channel", "guild", guildID, "err", err)
				}
			}
			b.tracker.Remove(guildID)
		}

		if err := b.session.Close(); err != nil {
			closeErr = fmt.Errorf("discord: close session: %w", err)
		}
		slog.Info("discord bot closed")
	})
	return closeErr
}

// connectedGuilds snapshots the guild IDs with active voice sessions.
func (b *Bot) connectedGuilds() []string {
	b.tracker.mu.RLock()
	defer b.tracker.mu.RUnlock()
	ids := make([]string, 0, len(b.tracker.sessions))
	for id := range b.tracker.sessions {
		ids = append(ids, id)
	}
	return ids
}

// onMessageCreate routes commands and speaks everything else that passes
// the gates.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if b.router.Dispatch(s, m, b.prefix) {
		return
	}
	b.speak(s, m)
}
