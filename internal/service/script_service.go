package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sonicbrief/api/internal/model"
)

// Fixed speaking rate used to size the script to the requested duration.
const wordsPerMinute = 150

// completionClient is the slice of the OpenAI client the script service
// needs.
type completionClient interface {
	ChatCompletion(ctx context.Context, system, user string) (string, error)
	IsConfigured() bool
}

// ScriptGenerator produces narration text for a brief.
type ScriptGenerator interface {
	Generate(ctx context.Context, mood model.Mood, subject string, durationSec int) string
}

// ScriptService generates narration scripts via a language model. Generator
// failure is recoverable: a deterministic fallback script is substituted so
// the pipeline can still proceed (script absence is recoverable, audio
// absence is not).
type ScriptService struct {
	llm completionClient
}

// NewScriptService creates a new script service.
func NewScriptService(llm completionClient) *ScriptService {
	return &ScriptService{llm: llm}
}

// Generate returns narration text for the given mood and subject, sized to
// the requested duration. Never fails: any generator error degrades to the
// fallback template.
func (s *ScriptService) Generate(ctx context.Context, mood model.Mood, subject string, durationSec int) string {
	targetWords := durationSec * wordsPerMinute / 60

	if s.llm == nil || !s.llm.IsConfigured() {
		return FallbackScript(mood, subject)
	}

	system := s.buildSystemPrompt()
	user := s.buildUserPrompt(mood, subject, targetWords)

	script, err := s.llm.ChatCompletion(ctx, system, user)
	if err != nil {
		log.Printf("Script generation failed, using fallback: %v", err)
		return FallbackScript(mood, subject)
	}

	script = strings.TrimSpace(script)
	if script == "" {
		log.Printf("Script generation returned empty text, using fallback")
		return FallbackScript(mood, subject)
	}
	return script
}

func (s *ScriptService) buildSystemPrompt() string {
	return `You are a writer of short spoken audio briefs.
You write in second person, present tense.
Your scripts induce the target mood rather than explain it.
Output plain narration text only: no headings, no stage directions, no quotes.`
}

func (s *ScriptService) buildUserPrompt(mood model.Mood, subject string, targetWords int) string {
	return fmt.Sprintf(`Write a spoken brief of about %d words.
Target mood: %s
Subject: %s

Keep sentences short and rhythmic. Address the listener directly.
Open by grounding the listener, close with a single clear intention.`,
		targetWords, mood, subject)
}

// FallbackScript is the deterministic script used when generation fails.
// It mentions both the mood and the subject so the brief stays personal.
func FallbackScript(mood model.Mood, subject string) string {
	if subject == "" {
		subject = "this moment"
	}
	return fmt.Sprintf(
		"Take a slow breath and settle in. This brief is here to bring you %s. "+
			"Turn your attention to %s. Notice it without judgment, one thought at a time. "+
			"With every breath, let %s come a little closer. You are exactly where you need to be.",
		mood, subject, mood)
}
