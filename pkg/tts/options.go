package tts

import (
	"encoding/json"
	"fmt"

	"github.com/reiyw/ttsbot/pkg/tts/voicetext"
	"github.com/reiyw/ttsbot/pkg/tts/voicevox"
)

// Options is the tagged union of a user's TTS configuration: exactly one of
// the two engine schemas is set. The zero value is invalid; use
// [NewVoiceTextOptions], [NewVoiceVoxOptions], or [DefaultOptions].
//
// The JSON encoding is a single-key object whose key names the engine:
//
//	{"voicetext":{"speaker":"show",...}}
//	{"voicevox":{"speaker":"ずんだもん",...}}
type Options struct {
	VoiceText *voicetext.Options
	VoiceVox  *voicevox.Options
}

// NewVoiceTextOptions wraps a VoiceText schema in the union.
func NewVoiceTextOptions(o voicetext.Options) Options {
	return Options{VoiceText: &o}
}

// NewVoiceVoxOptions wraps a VOICEVOX schema in the union.
func NewVoiceVoxOptions(o voicevox.Options) Options {
	return Options{VoiceVox: &o}
}

// DefaultOptions is the process-wide fallback used when a user has no stored
// preference: VoiceText with speaker show and every other field at default.
func DefaultOptions() Options {
	return NewVoiceTextOptions(voicetext.Options{
		Speaker:      voicetext.SpeakerShow,
		Format:       voicetext.FormatWav,
		EmotionLevel: 2,
		Pitch:        100,
		Speed:        100,
		Volume:       100,
	})
}

// Engine returns the engine tag of the populated variant, or "" for an
// invalid (empty) union.
func (o Options) Engine() Engine {
	switch {
	case o.VoiceText != nil:
		return EngineVoiceText
	case o.VoiceVox != nil:
		return EngineVoiceVox
	}
	return ""
}

// Equal reports structural equality of the populated variants.
func (o Options) Equal(p Options) bool {
	switch {
	case o.VoiceText != nil && p.VoiceText != nil:
		return *o.VoiceText == *p.VoiceText
	case o.VoiceVox != nil && p.VoiceVox != nil:
		return *o.VoiceVox == *p.VoiceVox
	}
	return o.VoiceText == nil && o.VoiceVox == nil && p.VoiceText == nil && p.VoiceVox == nil
}

// Clone returns an independent copy; mutating the copy never affects the
// original. Used by the option store to keep its cache unaliased.
func (o Options) Clone() Options {
	var c Options
	if o.VoiceText != nil {
		v := *o.VoiceText
		c.VoiceText = &v
	}
	if o.VoiceVox != nil {
		v := *o.VoiceVox
		c.VoiceVox = &v
	}
	return c
}

// optionsJSON is the stored single-key encoding of the union.
type optionsJSON struct {
	VoiceText *voicetext.Options `json:"voicetext,omitempty"`
	VoiceVox  *voicevox.Options  `json:"voicevox,omitempty"`
}

// MarshalJSON encodes the union as a single-key object.
func (o Options) MarshalJSON() ([]byte, error) {
	if (o.VoiceText == nil) == (o.VoiceVox == nil) {
		return nil, fmt.Errorf("tts: options must have exactly one variant set")
	}
	return json.Marshal(optionsJSON{VoiceText: o.VoiceText, VoiceVox: o.VoiceVox})
}

// UnmarshalJSON decodes the single-key encoding, rejecting objects that do
// not contain exactly one known engine key.
func (o *Options) UnmarshalJSON(b []byte) error {
	var raw optionsJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if (raw.VoiceText == nil) == (raw.VoiceVox == nil) {
		return fmt.Errorf("tts: options must have exactly one variant set")
	}
	o.VoiceText = raw.VoiceText
	o.VoiceVox = raw.VoiceVox
	return nil
}

// Preset is a named shortcut resolving to a fixed Options value.
type Preset string

const (
	PresetTakuya Preset = "takuya"
	PresetMunou  Preset = "munou"
)

// Presets returns all presets in a fixed order.
func Presets() []Preset {
	return []Preset{PresetTakuya, PresetMunou}
}

// ParsePreset converts a command token to a [Preset].
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case PresetTakuya, PresetMunou:
		return Preset(s), nil
	}
	return "", fmt.Errorf("tts: unrecognized preset %q", s)
}

// String returns the canonical lowercase name.
func (p Preset) String() string { return string(p) }

// Options resolves the preset to its canonical Options value.
func (p Preset) Options() Options {
	switch p {
	case PresetMunou:
		opts, _ := voicetext.NewBuilder().Speaker(voicetext.SpeakerShow).Pitch(150).Build()
		return NewVoiceTextOptions(opts)
	default: // PresetTakuya
		return DefaultOptions()
	}
}
