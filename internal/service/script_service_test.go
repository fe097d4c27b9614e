package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sonicbrief/api/internal/model"
)

type fakeLLM struct {
	response   string
	err        error
	configured bool
	lastUser   string
}

func (f *fakeLLM) ChatCompletion(ctx context.Context, system, user string) (string, error) {
	f.lastUser = user
	return f.response, f.err
}

func (f *fakeLLM) IsConfigured() bool { return f.configured }

func TestGenerateUsesLLMResponse(t *testing.T) {
	llm := &fakeLLM{response: "Close your eyes and breathe.", configured: true}
	svc := NewScriptService(llm)

	got := svc.Generate(context.Background(), model.MoodCalm, "rain", 60)
	if got != "Close your eyes and breathe." {
		t.Errorf("Generate = %q, want the LLM response", got)
	}
}

func TestGeneratePromptCarriesWordTarget(t *testing.T) {
	llm := &fakeLLM{response: "ok", configured: true}
	svc := NewScriptService(llm)

	// 120 seconds at 150 wpm is 300 words.
	svc.Generate(context.Background(), model.MoodFocus, "exam prep", 120)
	if !strings.Contains(llm.lastUser, "300 words") {
		t.Errorf("user prompt %q does not carry the word target", llm.lastUser)
	}
	if !strings.Contains(llm.lastUser, "exam prep") {
		t.Errorf("user prompt %q does not carry the subject", llm.lastUser)
	}
}

func TestGenerateFallsBackOnError(t *testing.T) {
	llm := &fakeLLM{err: fmt.Errorf("rate limited"), configured: true}
	svc := NewScriptService(llm)

	got := svc.Generate(context.Background(), model.MoodEnergy, "morning run", 60)
	if !strings.Contains(got, "energy") || !strings.Contains(got, "morning run") {
		t.Errorf("fallback script %q must mention mood and subject", got)
	}
}

func TestGenerateFallsBackWhenUnconfigured(t *testing.T) {
	svc := NewScriptService(&fakeLLM{configured: false})
	got := svc.Generate(context.Background(), model.MoodCalm, "ocean", 60)
	if got != FallbackScript(model.MoodCalm, "ocean") {
		t.Errorf("Generate = %q, want the fallback script", got)
	}
}

func TestGenerateFallsBackOnEmptyResponse(t *testing.T) {
	llm := &fakeLLM{response: "   \n", configured: true}
	svc := NewScriptService(llm)

	got := svc.Generate(context.Background(), model.MoodFocus, "study", 60)
	if got != FallbackScript(model.MoodFocus, "study") {
		t.Errorf("Generate = %q, want the fallback script", got)
	}
}

func TestFallbackScriptDeterministic(t *testing.T) {
	a := FallbackScript(model.MoodCalm, "rain")
	b := FallbackScript(model.MoodCalm, "rain")
	if a != b {
		t.Error("fallback script is not deterministic")
	}
	if FallbackScript(model.MoodCalm, "") == "" {
		t.Error("fallback script empty for empty subject")
	}
}
