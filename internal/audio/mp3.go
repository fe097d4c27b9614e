package audio

import (
	"bytes"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes an MP3 stream into a Clip. go-mp3 always yields
// interleaved 16-bit stereo at the source sample rate.
func DecodeMP3(data []byte) (*Clip, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("mp3: couldn't create decoder: %w", err)
	}

	var samples []int16
	buf := make([]byte, 2) // 2 bytes per sample for 16-bit audio
	for {
		_, err := decoder.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mp3: couldn't read sample: %w", err)
		}
		// Little endian
		samples = append(samples, int16(buf[0])|int16(buf[1])<<8)
	}

	return &Clip{
		Samples:    samples,
		SampleRate: decoder.SampleRate(),
		Channels:   2,
	}, nil
}
