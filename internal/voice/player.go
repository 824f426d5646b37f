// Package voice plays synthesized speech into Discord voice connections.
package voice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"

	"github.com/reiyw/ttsbot/pkg/audio"
)

// Discord voice uses 48 kHz stereo Opus at 20 ms frame size.
const (
	opusSampleRate  = 48000
	opusChannels    = 2
	opusFrameSizeMs = 20
	// opusFrameSize is the number of samples per channel per 20 ms frame.
	opusFrameSize = opusSampleRate * opusFrameSizeMs / 1000 // 960
)

// sendTimeout bounds a single OpusSend write so a dead voice connection
// cannot wedge playback forever.
const sendTimeout = time.Second

// Player decodes WAV synthesis output and streams it as Opus frames. All
// state is kept per guild: one message plays at a time per guild, guilds
// play concurrently, and muting or stopping one guild never affects
// another. Safe for concurrent use.
type Player struct {
	volume float64

	mu     sync.Mutex
	guilds map[string]*guildPlayback
}

// guildPlayback is the mute flag, in-flight cancel, and playback serializer
// for one guild.
type guildPlayback struct {
	playMu sync.Mutex

	mu     sync.Mutex
	muted  bool
	cancel context.CancelFunc
}

// NewPlayer creates a Player that scales all output by volume (0, 1].
func NewPlayer(volume float64) *Player {
	return &Player{volume: volume, guilds: make(map[string]*guildPlayback)}
}

// guild returns the guild's playback state, creating it on first use.
func (p *Player) guild(guildID string) *guildPlayback {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.guilds[guildID]
	if !ok {
		g = &guildPlayback{}
		p.guilds[guildID] = g
	}
	return g
}

// SetMuted switches muting on or off for one guild, reporting whether the
// state changed. Muting also stops the guild's playback in flight.
func (p *Player) SetMuted(guildID string, muted bool) bool {
	g := p.guild(guildID)
	g.mu.Lock()
	changed := g.muted != muted
	g.muted = muted
	cancel := g.cancel
	g.mu.Unlock()
	if muted && cancel != nil {
		cancel()
	}
	return changed
}

// Muted reports the guild's current mute state.
func (p *Player) Muted(guildID string) bool {
	g := p.guild(guildID)
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.muted
}

// Stop cancels the guild's playback in flight, if any.
func (p *Player) Stop(guildID string) {
	g := p.guild(guildID)
	g.mu.Lock()
	cancel := g.cancel
	g.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Play decodes wav, converts it to the Discord frame format, and streams it
// over vc. It blocks until the audio finishes, ctx is cancelled, or Stop is
// called for the guild. Playback while the guild is muted is a silent no-op.
func (p *Player) Play(ctx context.Context, guildID string, vc *discordgo.VoiceConnection, wav []byte) error {
	g := p.guild(guildID)
	g.playMu.Lock()
	defer g.playMu.Unlock()

	g.mu.Lock()
	if g.muted {
		g.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.mu.Unlock()
	defer func() {
		cancel()
		g.mu.Lock()
		g.cancel = nil
		g.mu.Unlock()
	}()

	pcm, err := audio.DecodeWAV(wav)
	if err != nil {
		return fmt.Errorf("voice: decode synthesis output: %w", err)
	}
	pcm = audio.Convert(pcm, audio.Format{SampleRate: opusSampleRate, Channels: opusChannels})
	data := audio.ScaleVolume(pcm.Data, p.volume)

	enc, err := gopus.NewEncoder(opusSampleRate, opusChannels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("voice: create opus encoder: %w", err)
	}

	if err := vc.Speaking(true); err != nil {
		return fmt.Errorf("voice: set speaking: %w", err)
	}
	// The connection may already be gone on the way out; nothing to recover.
	defer func() { _ = vc.Speaking(false) }()

	for _, frame := range frames(audio.BytesToInt16s(data), opusFrameSize*opusChannels) {
		packet, err := enc.Encode(frame, opusFrameSize, len(frame)*2)
		if err != nil {
			return fmt.Errorf("voice: opus encode: %w", err)
		}
		select {
		case vc.OpusSend <- packet:
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sendTimeout):
			return fmt.Errorf("voice: send timeout after %v", sendTimeout)
		}
	}
	return nil
}

// frames chunks interleaved samples into fixed-size frames, zero-padding the
// final partial frame so every frame encodes to a full 20 ms packet.
func frames(samples []int16, frameSize int) [][]int16 {
	if len(samples) == 0 {
		return nil
	}
	out := make([][]int16, 0, (len(samples)+frameSize-1)/frameSize)
	for start := 0; start < len(samples); start += frameSize {
		end := start + frameSize
		if end > len(samples) {
			frame := make([]int16, frameSize)
			copy(frame, samples[start:])
			out = append(out, frame)
			break
		}
		out = append(out, samples[start:end])
	}
	return out
}
