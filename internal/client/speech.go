package client

import "context"

// Speech formats returned by synthesizers.
const (
	SpeechFormatWAV = "wav"
	SpeechFormatMP3 = "mp3"
)

// SpeechResult is raw synthesized audio plus its container format.
type SpeechResult struct {
	Data   []byte
	Format string
}

// VoiceSynthesizer converts narration text to speech. Implemented by the
// OpenAI and ElevenLabs clients; synthesis errors are fatal to a brief.
type VoiceSynthesizer interface {
	Synthesize(ctx context.Context, text string) (*SpeechResult, error)
	IsConfigured() bool
}
