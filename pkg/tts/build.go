package tts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reiyw/ttsbot/pkg/tts/voicetext"
	"github.com/reiyw/ttsbot/pkg/tts/voicevox"
)

// BuildOptions parses a sequence of key=value tokens into a validated
// [Options] for the given engine.
//
// Tokens that are not of the form key=value (missing '=', empty key, or
// empty value) fail with a parse error naming the token. Unknown keys are
// silently ignored. Values for recognized keys that fail to parse are a hard
// error naming the field. Validation runs once, when the accumulated builder
// is finalized, and its error is returned verbatim.
func BuildOptions(engine Engine, tokens []string) (Options, error) {
	switch engine {
	case EngineVoiceText:
		opts, err := buildVoiceTextOptions(tokens)
		if err != nil {
			return Options{}, err
		}
		return NewVoiceTextOptions(opts), nil
	case EngineVoiceVox:
		opts, err := buildVoiceVoxOptions(tokens)
		if err != nil {
			return Options{}, err
		}
		return NewVoiceVoxOptions(opts), nil
	}
	return Options{}, fmt.Errorf("tts: unrecognized engine %q", engine)
}

// splitToken splits a key=value token, rejecting malformed input.
func splitToken(tok string) (key, value string, err error) {
	key, value, ok := strings.Cut(tok, "=")
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf(`option %q is not in the form "key=value"`, tok)
	}
	return key, value, nil
}

func buildVoiceTextOptions(tokens []string) (voicetext.Options, error) {
	b := voicetext.NewBuilder()
	for _, tok := range tokens {
		key, value, err := splitToken(tok)
		if err != nil {
			return voicetext.Options{}, err
		}
		switch key {
		case "speaker":
			speaker, err := voicetext.ParseSpeaker(value)
			if err != nil {
				return voicetext.Options{}, err
			}
			b.Speaker(speaker)
		case "emotion":
			emotion, err := voicetext.ParseEmotion(value)
			if err != nil {
				return voicetext.Options{}, err
			}
			b.Emotion(emotion)
		case "emotion_level":
			level, err := strconv.Atoi(value)
			if err != nil {
				return voicetext.Options{}, fmt.Errorf("invalid emotion_level value %q", value)
			}
			b.EmotionLevel(level)
		case "pitch":
			pitch, err := strconv.Atoi(value)
			if err != nil {
				return voicetext.Options{}, fmt.Errorf("invalid pitch value %q", value)
			}
			b.Pitch(pitch)
		case "speed":
			speed, err := strconv.Atoi(value)
			if err != nil {
				return voicetext.Options{}, fmt.Errorf("invalid speed value %q", value)
			}
			b.Speed(speed)
		}
	}
	return b.Build()
}

func buildVoiceVoxOptions(tokens []string) (voicevox.Options, error) {
	b := voicevox.NewBuilder()
	for _, tok := range tokens {
		key, value, err := splitToken(tok)
		if err != nil {
			return voicevox.Options{}, err
		}
		switch key {
		case "speaker":
			speaker, err := voicevox.ParseSpeaker(value)
			if err != nil {
				return voicevox.Options{}, err
			}
			b.Speaker(speaker)
		case "pitch":
			pitch, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return voicevox.Options{}, fmt.Errorf("invalid pitch value %q", value)
			}
			b.Pitch(pitch)
		case "intonationScale":
			scale, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return voicevox.Options{}, fmt.Errorf("invalid intonationScale value %q", value)
			}
			b.IntonationScale(scale)
		case "speed":
			speed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return voicevox.Options{}, fmt.Errorf("invalid speed value %q", value)
			}
			b.Speed(speed)
		}
	}
	return b.Build()
}
