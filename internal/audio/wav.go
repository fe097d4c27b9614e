// Package audio holds the pure audio core of the composition pipeline:
// a minimal WAV container reader/writer, the binaural tone generator and
// the weighted mixer. Everything here is deterministic and side-effect free.
package audio

import (
	"encoding/binary"
	"fmt"
)

// SampleRate is the fixed rate of the pipeline. Voice synthesis is requested
// at this rate and the tone generator and WAV writer use it unconditionally.
const SampleRate = 24000

// Clip is decoded 16-bit PCM audio. Samples are interleaved when Channels > 1.
type Clip struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// Stereo returns the clip's samples as an interleaved stereo stream,
// duplicating each sample when the source is mono.
func (c *Clip) Stereo() []int16 {
	if c.Channels == 2 {
		return c.Samples
	}
	out := make([]int16, 0, len(c.Samples)*2)
	for _, s := range c.Samples {
		out = append(out, s, s)
	}
	return out
}

// DecodeWAV parses a RIFF/WAVE byte stream by walking its chunks. Only
// 16-bit PCM is supported; any other container or codec is an error.
// No general multimedia library is used on purpose: the pipeline only ever
// sees WAV it produced itself or WAV returned by the voice synthesizer.
func DecodeWAV(data []byte) (*Clip, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("wav: data too short (%d bytes)", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("wav: not a RIFF/WAVE stream")
	}

	var (
		channels   int
		rate       int
		bits       int
		pcm        []byte
		haveFmt    bool
		haveData   bool
	)

	// Walk chunks: each is a 4-byte id, a 4-byte little-endian size, then
	// the payload, padded to an even byte boundary.
	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+size > len(data) {
			return nil, fmt.Errorf("wav: chunk %q overruns data", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("wav: fmt chunk too short (%d bytes)", size)
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return nil, fmt.Errorf("wav: unsupported audio format %d (want PCM)", format)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			rate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			pcm = data[body : body+size]
			haveData = true
		}

		off = body + size
		if size%2 == 1 {
			off++ // pad byte
		}
	}

	if !haveFmt {
		return nil, fmt.Errorf("wav: missing fmt chunk")
	}
	if !haveData {
		return nil, fmt.Errorf("wav: missing data chunk")
	}
	if bits != 16 {
		return nil, fmt.Errorf("wav: unsupported bit depth %d (want 16)", bits)
	}
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("wav: unsupported channel count %d", channels)
	}

	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}

	return &Clip{Samples: samples, SampleRate: rate, Channels: channels}, nil
}

// EncodeWAV wraps interleaved 16-bit PCM in a minimal RIFF/WAVE container
// (fmt + data chunks only).
func EncodeWAV(samples []int16, sampleRate, channels int) []byte {
	dataSize := len(samples) * 2
	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	byteRate := sampleRate * channels * 2
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(channels*2)) // block align
	binary.LittleEndian.PutUint16(buf[34:36], 16)                 // bits per sample

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[44+i*2:46+i*2], uint16(s))
	}

	return buf
}
