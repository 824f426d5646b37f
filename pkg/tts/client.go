package tts

import (
	"context"
	"fmt"

	"github.com/reiyw/ttsbot/pkg/tts/voicetext"
	"github.com/reiyw/ttsbot/pkg/tts/voicevox"
)

// Client dispatches synthesis requests to the engine client matching an
// [Options] variant. Either engine client may be nil when its API key is not
// configured; requests for that engine then fail. Safe for concurrent use.
type Client struct {
	voiceText *voicetext.Client
	voiceVox  *voicevox.Client
}

// NewClient creates a dispatcher over the given engine clients.
func NewClient(vt *voicetext.Client, vv *voicevox.Client) *Client {
	return &Client{voiceText: vt, voiceVox: vv}
}

// Request synthesizes text with the engine selected by opts and returns the
// raw audio bytes.
func (c *Client) Request(ctx context.Context, text string, opts Options) ([]byte, error) {
	switch {
	case opts.VoiceText != nil:
		if c.voiceText == nil {
			return nil, fmt.Errorf("tts: voicetext engine is not configured")
		}
		return c.voiceText.Synthesize(ctx, text, *opts.VoiceText)
	case opts.VoiceVox != nil:
		if c.voiceVox == nil {
			return nil, fmt.Errorf("tts: voicevox engine is not configured")
		}
		return c.voiceVox.Synthesize(ctx, text, *opts.VoiceVox)
	}
	return nil, fmt.Errorf("tts: options must have exactly one variant set")
}
