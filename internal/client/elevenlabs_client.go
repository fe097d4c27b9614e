package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sonicbrief/api/internal/config"
)

// ElevenLabsClient implements VoiceSynthesizer against the ElevenLabs API.
// Output is MP3 and gets decoded before mixing.
type ElevenLabsClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	voiceID    string
}

type elevenLabsTTSRequest struct {
	Text          string                 `json:"text"`
	ModelID       string                 `json:"model_id,omitempty"`
	VoiceSettings map[string]interface{} `json:"voice_settings,omitempty"`
}

// NewElevenLabsClient creates a new ElevenLabs API client.
func NewElevenLabsClient(cfg *config.ElevenLabsConfig) *ElevenLabsClient {
	return &ElevenLabsClient{
		httpClient: &http.Client{
			Timeout: speechTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		voiceID: cfg.VoiceID,
	}
}

// Synthesize converts text to speech using the configured voice.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) (*SpeechResult, error) {
	reqBody := elevenLabsTTSRequest{
		Text:    text,
		ModelID: "eleven_monolingual_v1",
		VoiceSettings: map[string]interface{}{
			"stability":        0.5,
			"similarity_boost": 0.75,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID)

	var data []byte
	err = withOneRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("xi-api-key", c.apiKey)
		req.Header.Set("Accept", "audio/mpeg")

		log.Printf("[ElevenLabs] → POST %s (%d chars)", endpoint, len(text))
		start := time.Now()

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Printf("[ElevenLabs] ✗ request failed: %v", err)
			return fmt.Errorf("failed to send request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		log.Printf("[ElevenLabs] ← %d (%d bytes, %v)", resp.StatusCode, len(respBody), time.Since(start))

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("elevenlabs API error (status %d): %s", resp.StatusCode, string(respBody))
		}

		data = respBody
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SpeechResult{Data: data, Format: SpeechFormatMP3}, nil
}

// IsConfigured returns true if the client has valid configuration.
func (c *ElevenLabsClient) IsConfigured() bool {
	return c.apiKey != ""
}
