package tts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/reiyw/ttsbot/pkg/tts/voicetext"
	"github.com/reiyw/ttsbot/pkg/tts/voicevox"
)

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	if opts.VoiceText == nil {
		t.Fatal("DefaultOptions() did not populate the voicetext variant")
	}
	want := voicetext.Options{
		Speaker:      voicetext.SpeakerShow,
		Format:       voicetext.FormatWav,
		EmotionLevel: 2,
		Pitch:        100,
		Speed:        100,
		Volume:       100,
	}
	if *opts.VoiceText != want {
		t.Errorf("DefaultOptions() = %+v, want %+v", *opts.VoiceText, want)
	}
	if got := opts.Engine(); got != EngineVoiceText {
		t.Errorf("Engine() = %q, want %q", got, EngineVoiceText)
	}
}

func TestOptions_JSON(t *testing.T) {
	t.Parallel()

	t.Run("voicetext round trip", func(t *testing.T) {
		t.Parallel()
		opts := DefaultOptions()
		b, err := json.Marshal(opts)
		if err != nil {
			t.Fatalf("Marshal() unexpected error: %v", err)
		}
		if !strings.HasPrefix(string(b), `{"voicetext":`) {
			t.Errorf("Marshal() = %s, want voicetext single-key object", b)
		}
		var decoded Options
		if err := json.Unmarshal(b, &decoded); err != nil {
			t.Fatalf("Unmarshal() unexpected error: %v", err)
		}
		if !decoded.Equal(opts) {
			t.Errorf("round trip: got %+v, want %+v", decoded, opts)
		}
	})

	t.Run("voicevox round trip", func(t *testing.T) {
		t.Parallel()
		inner, err := voicevox.NewBuilder().Speaker(voicevox.SpeakerZundamon).Build()
		if err != nil {
			t.Fatalf("Build() unexpected error: %v", err)
		}
		opts := NewVoiceVoxOptions(inner)
		b, err := json.Marshal(opts)
		if err != nil {
			t.Fatalf("Marshal() unexpected error: %v", err)
		}
		if !strings.HasPrefix(string(b), `{"voicevox":`) {
			t.Errorf("Marshal() = %s, want voicevox single-key object", b)
		}
		var decoded Options
		if err := json.Unmarshal(b, &decoded); err != nil {
			t.Fatalf("Unmarshal() unexpected error: %v", err)
		}
		if !decoded.Equal(opts) {
			t.Errorf("round trip: got %+v, want %+v", decoded, opts)
		}
	})

	t.Run("empty union rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := json.Marshal(Options{}); err == nil {
			t.Error("Marshal() expected error for empty union")
		}
		var decoded Options
		if err := json.Unmarshal([]byte(`{}`), &decoded); err == nil {
			t.Error("Unmarshal() expected error for empty object")
		}
	})

	t.Run("both variants rejected", func(t *testing.T) {
		t.Parallel()
		var decoded Options
		raw := `{"voicetext":{"speaker":"show","format":"wav","emotion_level":2,"pitch":100,"speed":100,"volume":100},"voicevox":{"speaker":"ずんだもん","pitch":0,"intonation_scale":1,"speed":1}}`
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			t.Error("Unmarshal() expected error when both variants are set")
		}
	})
}

func TestOptions_Clone(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	clone := opts.Clone()
	clone.VoiceText.Pitch = 150
	if opts.VoiceText.Pitch != 100 {
		t.Errorf("mutating the clone changed the original: pitch = %d", opts.VoiceText.Pitch)
	}
	if !opts.Equal(DefaultOptions()) {
		t.Error("original no longer equals DefaultOptions()")
	}
}

func TestOptions_Equal(t *testing.T) {
	t.Parallel()

	vt := DefaultOptions()
	vvInner, _ := voicevox.NewBuilder().Speaker(voicevox.SpeakerZundamon).Build()
	vv := NewVoiceVoxOptions(vvInner)

	if !vt.Equal(DefaultOptions()) {
		t.Error("identical voicetext options not equal")
	}
	if vt.Equal(vv) {
		t.Error("cross-engine options reported equal")
	}
	changed := vt.Clone()
	changed.VoiceText.Speed = 200
	if vt.Equal(changed) {
		t.Error("differing voicetext options reported equal")
	}
}

func TestParseEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Engine
		wantErr bool
	}{
		{"voicetext", EngineVoiceText, false},
		{"voicevox", EngineVoiceVox, false},
		{"VoiceText", EngineVoiceText, false},
		{"VOICEVOX", EngineVoiceVox, false},
		{"espeak", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseEngine(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseEngine(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEngine(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseEngine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	t.Parallel()

	t.Run("takuya is the default voice", func(t *testing.T) {
		t.Parallel()
		opts := PresetTakuya.Options()
		if !opts.Equal(DefaultOptions()) {
			t.Errorf("takuya = %+v, want default options", opts)
		}
	})

	t.Run("munou raises pitch", func(t *testing.T) {
		t.Parallel()
		opts := PresetMunou.Options()
		if opts.VoiceText == nil {
			t.Fatal("munou did not resolve to a voicetext variant")
		}
		if opts.VoiceText.Speaker != voicetext.SpeakerShow {
			t.Errorf("speaker = %q, want show", opts.VoiceText.Speaker)
		}
		if opts.VoiceText.Pitch != 150 {
			t.Errorf("pitch = %d, want 150", opts.VoiceText.Pitch)
		}
	})

	t.Run("parse", func(t *testing.T) {
		t.Parallel()
		for _, p := range Presets() {
			parsed, err := ParsePreset(p.String())
			if err != nil {
				t.Errorf("ParsePreset(%q) unexpected error: %v", p, err)
				continue
			}
			if parsed != p {
				t.Errorf("round trip: got %q, want %q", parsed, p)
			}
		}
		if _, err := ParsePreset("robot"); err == nil {
			t.Error("ParsePreset(robot) expected error")
		}
	})
}
