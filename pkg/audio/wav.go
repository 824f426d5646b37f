// Package audio decodes WAV containers and converts 16-bit PCM between
// sample rates and channel layouts.
package audio

import (
	"encoding/binary"
	"fmt"
)

// PCM is a block of interleaved little-endian int16 samples.
type PCM struct {
	SampleRate int
	Channels   int
	Data       []byte
}

// DecodeWAV parses a RIFF/WAVE container holding 16-bit integer PCM. Chunks
// other than fmt and data are skipped.
func DecodeWAV(b []byte) (PCM, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return PCM{}, fmt.Errorf("audio: not a RIFF/WAVE container")
	}

	var (
		pcm     PCM
		gotFmt  bool
		gotData bool
	)
	off := 12
	for off+8 <= len(b) {
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		body := off + 8
		if body+size > len(b) {
			return PCM{}, fmt.Errorf("audio: truncated %q chunk", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return PCM{}, fmt.Errorf("audio: fmt chunk too short (%d bytes)", size)
			}
			format := binary.LittleEndian.Uint16(b[body : body+2])
			if format != 1 {
				return PCM{}, fmt.Errorf("audio: unsupported WAV format %d, want PCM", format)
			}
			bits := binary.LittleEndian.Uint16(b[body+14 : body+16])
			if bits != 16 {
				return PCM{}, fmt.Errorf("audio: unsupported bit depth %d, want 16", bits)
			}
			pcm.Channels = int(binary.LittleEndian.Uint16(b[body+2 : body+4]))
			pcm.SampleRate = int(binary.LittleEndian.Uint32(b[body+4 : body+8]))
			gotFmt = true
		case "data":
			pcm.Data = b[body : body+size]
			gotData = true
		}

		// Chunks are word-aligned.
		off = body + size + size%2
	}

	if !gotFmt {
		return PCM{}, fmt.Errorf("audio: missing fmt chunk")
	}
	if !gotData {
		return PCM{}, fmt.Errorf("audio: missing data chunk")
	}
	if pcm.Channels < 1 || pcm.Channels > 2 {
		return PCM{}, fmt.Errorf("audio: unsupported channel count %d", pcm.Channels)
	}
	if pcm.SampleRate <= 0 {
		return PCM{}, fmt.Errorf("audio: invalid sample rate %d", pcm.SampleRate)
	}
	if len(pcm.Data)%2 != 0 {
		return PCM{}, fmt.Errorf("audio: odd data chunk length %d", len(pcm.Data))
	}
	return pcm, nil
}

// ScaleVolume multiplies every sample by factor, clamping to the int16
// range. The input is returned unchanged when factor is 1.
func ScaleVolume(pcm []byte, factor float64) []byte {
	if factor == 1 {
		return pcm
	}
	out := make([]byte, len(pcm))
	for i := 0; i+1 < len(pcm); i += 2 {
		s := float64(int16(pcm[i]) | int16(pcm[i+1])<<8)
		v := s * factor
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		scaled := int16(v)
		out[i] = byte(scaled)
		out[i+1] = byte(scaled >> 8)
	}
	return out
}
