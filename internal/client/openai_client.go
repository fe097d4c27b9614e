package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sonicbrief/api/internal/config"
)

// Retry policy for external AI calls: one retry after a short fixed backoff.
const (
	aiRetryBackoff = 2 * time.Second
	chatTimeout    = 60 * time.Second
	speechTimeout  = 120 * time.Second
)

// OpenAIClient handles script generation (chat completion) and voice
// synthesis (speech endpoint) against the OpenAI API.
type OpenAIClient struct {
	chat     *openai.Client
	speech   *openai.Client
	apiKey   string
	model    string
	ttsModel string
	ttsVoice string
	ttsSpeed float64
}

// NewOpenAIClient creates a new OpenAI client. Chat and speech use separate
// underlying clients because their timeouts differ.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	chatCfg := openai.DefaultConfig(cfg.APIKey)
	chatCfg.HTTPClient = &http.Client{Timeout: chatTimeout}

	speechCfg := openai.DefaultConfig(cfg.APIKey)
	speechCfg.HTTPClient = &http.Client{Timeout: speechTimeout}

	return &OpenAIClient{
		chat:     openai.NewClientWithConfig(chatCfg),
		speech:   openai.NewClientWithConfig(speechCfg),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		ttsModel: cfg.TTSModel,
		ttsVoice: cfg.TTSVoice,
		ttsSpeed: cfg.TTSSpeed,
	}
}

// ChatCompletion sends a system+user prompt pair and returns the first
// choice's content.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
	}

	var content string
	err := withOneRetry(ctx, func() error {
		resp, err := c.chat.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no choices in response")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	return content, nil
}

// Synthesize converts text to speech and returns WAV audio at the
// pipeline's fixed voice identity and speed.
func (c *OpenAIClient) Synthesize(ctx context.Context, text string) (*SpeechResult, error) {
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.ttsModel),
		Input:          text,
		Voice:          openai.SpeechVoice(c.ttsVoice),
		ResponseFormat: openai.SpeechResponseFormatWav,
		Speed:          c.ttsSpeed,
	}

	var data []byte
	err := withOneRetry(ctx, func() error {
		resp, err := c.speech.CreateSpeech(ctx, req)
		if err != nil {
			return err
		}
		defer resp.Close()
		data, err = io.ReadAll(resp)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech synthesis: %w", err)
	}

	return &SpeechResult{Data: data, Format: SpeechFormatWAV}, nil
}

// IsConfigured returns true if the client has valid configuration.
func (c *OpenAIClient) IsConfigured() bool {
	return c.apiKey != ""
}

// withOneRetry runs fn and retries exactly once after a fixed backoff.
func withOneRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(aiRetryBackoff):
	}
	return fn()
}
