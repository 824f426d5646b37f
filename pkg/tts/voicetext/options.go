// Package voicetext provides the option schema and HTTP client for the
// VoiceText web API (https://cloud.voicetext.jp/webapi).
//
// Options are constructed through [Builder], which applies defaults for
// omitted fields and validates cross-field rules once at [Builder.Build].
package voicetext

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Speaker is a VoiceText voice.
type Speaker string

const (
	SpeakerShow   Speaker = "show"
	SpeakerHaruka Speaker = "haruka"
	SpeakerHikari Speaker = "hikari"
	SpeakerTakeru Speaker = "takeru"
	SpeakerSanta  Speaker = "santa"
	SpeakerBear   Speaker = "bear"
)

// AllSpeakers returns every VoiceText speaker in a fixed order.
func AllSpeakers() []Speaker {
	return []Speaker{SpeakerShow, SpeakerHaruka, SpeakerHikari, SpeakerTakeru, SpeakerSanta, SpeakerBear}
}

// ParseSpeaker converts the canonical lowercase name to a [Speaker].
func ParseSpeaker(s string) (Speaker, error) {
	switch Speaker(s) {
	case SpeakerShow, SpeakerHaruka, SpeakerHikari, SpeakerTakeru, SpeakerSanta, SpeakerBear:
		return Speaker(s), nil
	}
	return "", fmt.Errorf("voicetext: unrecognized speaker %q", s)
}

// String returns the canonical lowercase name, which is also the wire value.
func (s Speaker) String() string { return string(s) }

// UnmarshalJSON rejects unknown speaker names so that corrupt stored rows
// surface as decode errors instead of silently producing a bad request.
func (s *Speaker) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseSpeaker(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Format is the audio container returned by the VoiceText API.
type Format string

const (
	FormatWav Format = "wav"
	FormatOgg Format = "ogg"
	FormatMp3 Format = "mp3"
)

// ParseFormat converts the canonical lowercase name to a [Format].
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatWav, FormatOgg, FormatMp3:
		return Format(s), nil
	}
	return "", fmt.Errorf("voicetext: unrecognized format %q", s)
}

// String returns the canonical lowercase name, which is also the wire value.
func (f Format) String() string { return string(f) }

// UnmarshalJSON rejects unknown format names.
func (f *Format) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseFormat(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Emotion is an optional emotional colouring applied to synthesis. The empty
// string means no emotion.
type Emotion string

const (
	EmotionHappiness Emotion = "happiness"
	EmotionAnger     Emotion = "anger"
	EmotionSadness   Emotion = "sadness"
)

// ParseEmotion converts the canonical lowercase name to an [Emotion].
func ParseEmotion(s string) (Emotion, error) {
	switch Emotion(s) {
	case EmotionHappiness, EmotionAnger, EmotionSadness:
		return Emotion(s), nil
	}
	return "", fmt.Errorf("voicetext: unrecognized emotion %q", s)
}

// String returns the canonical lowercase name, which is also the wire value.
func (e Emotion) String() string { return string(e) }

// UnmarshalJSON rejects unknown emotion names.
func (e *Emotion) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseEmotion(raw)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Options is a validated VoiceText synthesis configuration. Construct it
// through [Builder]; a zero Options is not valid.
type Options struct {
	Speaker      Speaker `json:"speaker"`
	Format       Format  `json:"format"`
	Emotion      Emotion `json:"emotion,omitempty"`
	EmotionLevel int     `json:"emotion_level"`
	Pitch        int     `json:"pitch"`
	Speed        int     `json:"speed"`
	Volume       int     `json:"volume"`
}

// Defaults for fields that may be omitted from the builder.
const (
	defaultEmotionLevel = 2
	defaultPitch        = 100
	defaultSpeed        = 100
	defaultVolume       = 100
)

// Builder accumulates VoiceText option fields. Defaults are applied and all
// validation rules run once, in [Builder.Build]; the setters never fail.
type Builder struct {
	speaker      *Speaker
	format       *Format
	emotion      *Emotion
	emotionLevel *int
	pitch        *int
	speed        *int
	volume       *int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Speaker sets the voice. Required.
func (b *Builder) Speaker(s Speaker) *Builder { b.speaker = &s; return b }

// Format sets the audio container. Default: wav.
func (b *Builder) Format(f Format) *Builder { b.format = &f; return b }

// Emotion sets the emotional colouring. Default: none.
func (b *Builder) Emotion(e Emotion) *Builder { b.emotion = &e; return b }

// EmotionLevel sets the emotion intensity (1–4). Default: 2.
func (b *Builder) EmotionLevel(l int) *Builder { b.emotionLevel = &l; return b }

// Pitch sets the pitch percentage (50–200). Default: 100.
func (b *Builder) Pitch(p int) *Builder { b.pitch = &p; return b }

// Speed sets the speed percentage (50–400). Default: 100.
func (b *Builder) Speed(s int) *Builder { b.speed = &s; return b }

// Volume sets the volume percentage (50–200). Default: 100.
func (b *Builder) Volume(v int) *Builder { b.volume = &v; return b }

// Build applies defaults for omitted fields and validates the result.
// Rules are checked in a fixed order and the first violation is returned;
// the rule messages are user-facing and sent back to the chat verbatim.
func (b *Builder) Build() (Options, error) {
	if b.speaker == nil {
		return Options{}, errors.New("voicetext: speaker must be set")
	}

	opts := Options{
		Speaker:      *b.speaker,
		Format:       FormatWav,
		EmotionLevel: defaultEmotionLevel,
		Pitch:        defaultPitch,
		Speed:        defaultSpeed,
		Volume:       defaultVolume,
	}
	if b.format != nil {
		opts.Format = *b.format
	}
	if b.emotion != nil {
		opts.Emotion = *b.emotion
	}
	if b.emotionLevel != nil {
		opts.EmotionLevel = *b.emotionLevel
	}
	if b.pitch != nil {
		opts.Pitch = *b.pitch
	}
	if b.speed != nil {
		opts.Speed = *b.speed
	}
	if b.volume != nil {
		opts.Volume = *b.volume
	}

	if opts.Emotion != "" && opts.Speaker == SpeakerShow {
		return Options{}, errors.New("emotion can be used when speaker is haruka, hikari, takeru santa, or bear")
	}
	if opts.EmotionLevel < 1 || opts.EmotionLevel > 4 {
		return Options{}, errors.New("Bad emotion_level, must be 1 <= emotion_level <= 4")
	}
	if opts.Pitch < 50 || opts.Pitch > 200 {
		return Options{}, errors.New("Bad pitch, must be 50 <= pitch <= 200")
	}
	if opts.Speed < 50 || opts.Speed > 400 {
		return Options{}, errors.New("Bad speed, must be 50 <= speed <= 400")
	}
	if opts.Volume < 50 || opts.Volume > 200 {
		return Options{}, errors.New("Bad volume, must be 50 <= volume <= 200")
	}
	return opts, nil
}
