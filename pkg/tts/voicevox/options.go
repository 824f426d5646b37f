// Package voicevox provides the option schema and HTTP client for the
// hosted VOICEVOX API (https://voicevox.su-shiki.com).
//
// Speakers are addressed by their Japanese display name in commands and
// stored options, but by a fixed numeric style ID on the wire.
package voicevox

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Speaker is a VOICEVOX character/style variant. The string value is the
// display name; the wire parameter is the numeric ID from [Speaker.ID].
type Speaker string

const (
	SpeakerShikokuMetan        Speaker = "四国めたん"
	SpeakerShikokuMetanAmaama  Speaker = "四国めたんあまあま"
	SpeakerShikokuMetanTsun    Speaker = "四国めたんツンツン"
	SpeakerShikokuMetanSexy    Speaker = "四国めたんセクシー"
	SpeakerZundamon            Speaker = "ずんだもん"
	SpeakerZundamonAmaama      Speaker = "ずんだもんあまあま"
	SpeakerZundamonTsun        Speaker = "ずんだもんツンツン"
	SpeakerZundamonSexy        Speaker = "ずんだもんセクシー"
	SpeakerKasukabeTsumugi     Speaker = "春日部つむぎ"
	SpeakerAmehareHau          Speaker = "雨晴はう"
	SpeakerNamineRitsu         Speaker = "波音リツ"
	SpeakerKuronoTakehiro      Speaker = "玄野武宏"
	SpeakerShirakamiKotarou    Speaker = "白上虎太郎"
	SpeakerAoyamaRyuusei       Speaker = "青山龍星"
	SpeakerMeimeiHimari        Speaker = "冥鳴ひまり"
	SpeakerKyuushuuSora        Speaker = "九州そら"
	SpeakerKyuushuuSoraAmaama  Speaker = "九州そらあまあま"
	SpeakerKyuushuuSoraTsun    Speaker = "九州そらツンツン"
	SpeakerKyuushuuSoraSexy    Speaker = "九州そらセクシー"
	SpeakerKyuushuuSoraSasayaki Speaker = "九州そらささやき"
)

// speakerIDs maps each speaker to its fixed VOICEVOX style ID.
var speakerIDs = map[Speaker]int{
	SpeakerShikokuMetan:         2,
	SpeakerShikokuMetanAmaama:   0,
	SpeakerShikokuMetanTsun:     6,
	SpeakerShikokuMetanSexy:     4,
	SpeakerZundamon:             3,
	SpeakerZundamonAmaama:       1,
	SpeakerZundamonTsun:         7,
	SpeakerZundamonSexy:         5,
	SpeakerKasukabeTsumugi:      8,
	SpeakerAmehareHau:           10,
	SpeakerNamineRitsu:          9,
	SpeakerKuronoTakehiro:       11,
	SpeakerShirakamiKotarou:     12,
	SpeakerAoyamaRyuusei:        13,
	SpeakerMeimeiHimari:         14,
	SpeakerKyuushuuSora:         16,
	SpeakerKyuushuuSoraAmaama:   15,
	SpeakerKyuushuuSoraTsun:     18,
	SpeakerKyuushuuSoraSexy:     17,
	SpeakerKyuushuuSoraSasayaki: 19,
}

// AllSpeakers returns every VOICEVOX speaker in a fixed order.
func AllSpeakers() []Speaker {
	return []Speaker{
		SpeakerShikokuMetan, SpeakerShikokuMetanAmaama, SpeakerShikokuMetanTsun, SpeakerShikokuMetanSexy,
		SpeakerZundamon, SpeakerZundamonAmaama, SpeakerZundamonTsun, SpeakerZundamonSexy,
		SpeakerKasukabeTsumugi, SpeakerAmehareHau, SpeakerNamineRitsu,
		SpeakerKuronoTakehiro, SpeakerShirakamiKotarou, SpeakerAoyamaRyuusei, SpeakerMeimeiHimari,
		SpeakerKyuushuuSora, SpeakerKyuushuuSoraAmaama, SpeakerKyuushuuSoraTsun,
		SpeakerKyuushuuSoraSexy, SpeakerKyuushuuSoraSasayaki,
	}
}

// ParseSpeaker converts a display name to a [Speaker].
func ParseSpeaker(s string) (Speaker, error) {
	if _, ok := speakerIDs[Speaker(s)]; ok {
		return Speaker(s), nil
	}
	return "", fmt.Errorf("voicevox: unrecognized speaker %q", s)
}

// String returns the display name.
func (s Speaker) String() string { return string(s) }

// ID returns the numeric style ID sent as the wire parameter.
func (s Speaker) ID() int { return speakerIDs[s] }

// UnmarshalJSON rejects unknown speaker names so corrupt stored rows surface
// as decode errors.
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

// Options is a validated VOICEVOX synthesis configuration. Construct it
// through [Builder]; a zero Options is not valid.
//
// No numeric ranges are enforced beyond requiring a speaker; out-of-range
// values are left to the upstream API to reject.
type Options struct {
	Speaker         Speaker `json:"speaker"`
	Pitch           float64 `json:"pitch"`
	IntonationScale float64 `json:"intonation_scale"`
	Speed           float64 `json:"speed"`
}

// Builder accumulates VOICEVOX option fields. Defaults are applied and the
// required-speaker check runs once, in [Builder.Build].
type Builder struct {
	speaker         *Speaker
	pitch           *float64
	intonationScale *float64
	speed           *float64
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Speaker sets the character/style. Required.
func (b *Builder) Speaker(s Speaker) *Builder { b.speaker = &s; return b }

// Pitch sets the pitch offset. Default: 0.0.
func (b *Builder) Pitch(p float64) *Builder { b.pitch = &p; return b }

// IntonationScale sets the intonation scale. Default: 1.0.
func (b *Builder) IntonationScale(i float64) *Builder { b.intonationScale = &i; return b }

// Speed sets the speed scale. Default: 1.0.
func (b *Builder) Speed(s float64) *Builder { b.speed = &s; return b }

// Build applies defaults for omitted fields and returns the finished Options.
func (b *Builder) Build() (Options, error) {
	if b.speaker == nil {
		return Options{}, errors.New("voicevox: speaker must be set")
	}
	opts := Options{
		Speaker:         *b.speaker,
		Pitch:           0.0,
		IntonationScale: 1.0,
		Speed:           1.0,
	}
	if b.pitch != nil {
		opts.Pitch = *b.pitch
	}
	if b.intonationScale != nil {
		opts.IntonationScale = *b.intonationScale
	}
	if b.speed != nil {
		opts.Speed = *b.speed
	}
	return opts, nil
}
