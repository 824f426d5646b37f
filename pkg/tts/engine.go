// Package tts defines the engine-independent text-to-speech surface: the
// [Engine] enumeration, the [Options] tagged union over the per-engine
// option schemas, named [Preset] shortcuts, the key=value token builder,
// and the [Client] that dispatches synthesis requests to the engine
// matching an Options variant.
package tts

import (
	"fmt"
	"strings"
)

// Engine identifies one of the supported TTS backends.
type Engine string

const (
	EngineVoiceText Engine = "voicetext"
	EngineVoiceVox  Engine = "voicevox"
)

// Engines returns all supported engines in a fixed order.
func Engines() []Engine {
	return []Engine{EngineVoiceText, EngineVoiceVox}
}

// ParseEngine converts a command token to an [Engine]. Matching is
// case-insensitive; the canonical form is lowercase.
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(s)) {
	case EngineVoiceText:
		return EngineVoiceText, nil
	case EngineVoiceVox:
		return EngineVoiceVox, nil
	}
	return "", fmt.Errorf("tts: unrecognized engine %q", s)
}

// String returns the canonical lowercase name.
func (e Engine) String() string { return string(e) }
