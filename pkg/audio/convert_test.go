package audio_test

import (
	"encoding/binary"
	"testing"

	"github.com/reiyw/ttsbot/pkg/audio"
)

// samplesToBytes converts a slice of int16 samples to little-endian byte representation.
func samplesToBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}

// bytesToSamples converts a little-endian byte slice to int16 samples.
func bytesToSamples(b []byte) []int16 {
	samples := make([]int16, len(b)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return samples
}

func TestMonoToStereo(t *testing.T) {
	mono := samplesToBytes([]int16{100, 200, 300})
	stereo := audio.MonoToStereo(mono)
	got := bytesToSamples(stereo)
	want := []int16{100, 100, 200, 200, 300, 300}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestStereoToMono(t *testing.T) {
	// Two stereo frames: L=100,R=200 and L=-100,R=-200
	stereo := samplesToBytes([]int16{100, 200, -100, -200})
	mono := audio.StereoToMono(stereo)
	got := bytesToSamples(mono)
	want := []int16{150, -150}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestStereoToMono_Clamping(t *testing.T) {
	// Two max-positive samples should clamp to 32767 (not overflow).
	stereo := samplesToBytes([]int16{32767, 32767})
	mono := audio.StereoToMono(stereo)
	got := bytesToSamples(mono)
	want := []int16{32767}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if got[0] != want[0] {
		t.Errorf("got %d, want %d", got[0], want[0])
	}
}

func TestResampleMono16_SameRate(t *testing.T) {
	pcm := samplesToBytes([]int16{100, 200, 300})
	out := audio.ResampleMono16(pcm, 48000, 48000)
	if len(out) != len(pcm) {
		t.Fatalf("length mismatch: got %d, want %d", len(out), len(pcm))
	}
}

func TestResampleMono16_Upsample(t *testing.T) {
	// 2 samples at 16kHz → 6 samples at 48kHz (3x)
	pcm := samplesToBytes([]int16{1000, 2000})
	out := audio.ResampleMono16(pcm, 16000, 48000)
	got := bytesToSamples(out)
	if len(got) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(got))
	}
	// First output sample should equal first source sample.
	if got[0] != 1000 {
		t.Errorf("first sample: got %d, want 1000", got[0])
	}
	// Last output sample should be close to last source sample.
	last := got[len(got)-1]
	if last < 1800 || last > 2200 {
		t.Errorf("last sample: got %d, want close to 2000", last)
	}
}

func TestResampleMono16_Downsample(t *testing.T) {
	// 6 samples at 48kHz → 2 samples at 16kHz (1/3x)
	pcm := samplesToBytes([]int16{100, 200, 300, 400, 500, 600})
	out := audio.ResampleMono16(pcm, 48000, 16000)
	got := bytesToSamples(out)
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
}

func TestResampleStereo16(t *testing.T) {
	// 2 stereo frames at 16kHz → 6 stereo frames (12 samples) at 48kHz
	pcm := samplesToBytes([]int16{100, 200, 300, 400})
	out := audio.ResampleStereo16(pcm, 16000, 48000)
	got := bytesToSamples(out)
	if len(got) != 12 {
		t.Fatalf("expected 12 samples, got %d", len(got))
	}
}

func TestConvert_NoOp(t *testing.T) {
	pcm := audio.PCM{SampleRate: 48000, Channels: 2, Data: samplesToBytes([]int16{1, 2, 3, 4})}
	out := audio.Convert(pcm, audio.Format{SampleRate: 48000, Channels: 2})
	if &out.Data[0] != &pcm.Data[0] {
		t.Error("matching format should return the input unchanged")
	}
}

func TestConvert_MonoUpsampleToStereo(t *testing.T) {
	// 24kHz mono → 48kHz stereo: sample count doubles, then each sample
	// becomes an L+R pair.
	pcm := audio.PCM{SampleRate: 24000, Channels: 1, Data: samplesToBytes([]int16{1000, 2000})}
	out := audio.Convert(pcm, audio.Format{SampleRate: 48000, Channels: 2})
	if out.SampleRate != 48000 || out.Channels != 2 {
		t.Fatalf("format = %dHz/%dch, want 48000Hz/2ch", out.SampleRate, out.Channels)
	}
	got := bytesToSamples(out.Data)
	if len(got) != 8 {
		t.Fatalf("expected 8 samples, got %d", len(got))
	}
	if got[0] != got[1] {
		t.Errorf("stereo pair differs: L=%d R=%d", got[0], got[1])
	}
}

func TestConvert_StereoToMono(t *testing.T) {
	pcm := audio.PCM{SampleRate: 48000, Channels: 2, Data: samplesToBytes([]int16{100, 200})}
	out := audio.Convert(pcm, audio.Format{SampleRate: 48000, Channels: 1})
	got := bytesToSamples(out.Data)
	if len(got) != 1 || got[0] != 150 {
		t.Errorf("got %v, want [150]", got)
	}
}

func TestInt16RoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 1234}
	got := audio.BytesToInt16s(audio.Int16sToBytes(samples))
	if len(got) != len(samples) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d: got %d, want %d", i, got[i], samples[i])
		}
	}
}
