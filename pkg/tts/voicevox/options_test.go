package voicevox

import (
	"encoding/json"
	"testing"
)

func TestBuilder_Defaults(t *testing.T) {
	t.Parallel()

	opts, err := NewBuilder().Speaker(SpeakerZundamon).Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	want := Options{
		Speaker:         SpeakerZundamon,
		Pitch:           0.0,
		IntonationScale: 1.0,
		Speed:           1.0,
	}
	if opts != want {
		t.Errorf("Build() = %+v, want %+v", opts, want)
	}
}

func TestBuilder_AllFields(t *testing.T) {
	t.Parallel()

	opts, err := NewBuilder().
		Speaker(SpeakerShikokuMetanSexy).
		Pitch(-0.05).
		IntonationScale(1.5).
		Speed(0.8).
		Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	want := Options{
		Speaker:         SpeakerShikokuMetanSexy,
		Pitch:           -0.05,
		IntonationScale: 1.5,
		Speed:           0.8,
	}
	if opts != want {
		t.Errorf("Build() = %+v, want %+v", opts, want)
	}
}

func TestBuilder_MissingSpeaker(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder().Pitch(0.1).Build()
	if err == nil {
		t.Fatal("Build() expected error, got nil")
	}
	if got, want := err.Error(), "voicevox: speaker must be set"; got != want {
		t.Errorf("Build() error = %q, want %q", got, want)
	}
}

func TestSpeaker_IDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		speaker Speaker
		id      int
	}{
		{SpeakerShikokuMetan, 2},
		{SpeakerShikokuMetanAmaama, 0},
		{SpeakerShikokuMetanTsun, 6},
		{SpeakerShikokuMetanSexy, 4},
		{SpeakerZundamon, 3},
		{SpeakerZundamonAmaama, 1},
		{SpeakerZundamonTsun, 7},
		{SpeakerZundamonSexy, 5},
		{SpeakerKasukabeTsumugi, 8},
		{SpeakerAmehareHau, 10},
		{SpeakerNamineRitsu, 9},
		{SpeakerKuronoTakehiro, 11},
		{SpeakerShirakamiKotarou, 12},
		{SpeakerAoyamaRyuusei, 13},
		{SpeakerMeimeiHimari, 14},
		{SpeakerKyuushuuSora, 16},
		{SpeakerKyuushuuSoraAmaama, 15},
		{SpeakerKyuushuuSoraTsun, 18},
		{SpeakerKyuushuuSoraSexy, 17},
		{SpeakerKyuushuuSoraSasayaki, 19},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.speaker.String(), func(t *testing.T) {
			t.Parallel()
			if got := tt.speaker.ID(); got != tt.id {
				t.Errorf("ID() = %d, want %d", got, tt.id)
			}
		})
	}
}

func TestParseSpeaker(t *testing.T) {
	t.Parallel()

	for _, s := range AllSpeakers() {
		parsed, err := ParseSpeaker(s.String())
		if err != nil {
			t.Errorf("ParseSpeaker(%q) unexpected error: %v", s, err)
			continue
		}
		if parsed != s {
			t.Errorf("round trip: got %q, want %q", parsed, s)
		}
	}

	if _, err := ParseSpeaker("四国めたんノーマル"); err == nil {
		t.Error("ParseSpeaker expected error for unknown name")
	}
}

func TestAllSpeakers_Count(t *testing.T) {
	t.Parallel()

	if got, want := len(AllSpeakers()), len(speakerIDs); got != want {
		t.Errorf("AllSpeakers() has %d entries, speakerIDs has %d", got, want)
	}
}

func TestOptions_JSON(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		opts, err := NewBuilder().Speaker(SpeakerKasukabeTsumugi).Speed(1.2).Build()
		if err != nil {
			t.Fatalf("Build() unexpected error: %v", err)
		}
		b, err := json.Marshal(opts)
		if err != nil {
			t.Fatalf("Marshal() unexpected error: %v", err)
		}
		var decoded Options
		if err := json.Unmarshal(b, &decoded); err != nil {
			t.Fatalf("Unmarshal() unexpected error: %v", err)
		}
		if decoded != opts {
			t.Errorf("round trip: got %+v, want %+v", decoded, opts)
		}
	})

	t.Run("unknown speaker rejected", func(t *testing.T) {
		t.Parallel()
		var decoded Options
		err := json.Unmarshal([]byte(`{"speaker":"unknown","pitch":0,"intonation_scale":1,"speed":1}`), &decoded)
		if err == nil {
			t.Fatal("Unmarshal() expected error for unknown speaker")
		}
	})
}
