package store

import (
	"context"
	"testing"
	"time"

	"github.com/sonicbrief/api/internal/model"
)

func TestMemoryStore_BriefLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	brief := &model.Brief{
		ID:          "b1",
		OwnerID:     "u1",
		Mood:        model.MoodCalm,
		Topics:      []string{"rivers"},
		DurationSec: 120,
		Status:      model.StatusQueued,
		CreatedAt:   time.Now(),
	}

	if err := s.CreateBrief(ctx, brief); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := s.GetBrief(ctx, "b1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != model.StatusQueued {
		t.Errorf("expected queued, got %s", got.Status)
	}

	got.Status = model.StatusReady
	got.AudioURL = "https://cdn.example.com/b1.wav"
	if err := s.UpdateBrief(ctx, got); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got2, err := s.GetBrief(ctx, "b1")
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if got2.Status != model.StatusReady || got2.AudioURL == "" {
		t.Errorf("update not persisted: %+v", got2)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.GetBrief(context.Background(), "nope"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateBrief(context.Background(), &model.Brief{ID: "nope"}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound on update of missing brief, got %v", err)
	}
}

func TestMemoryStore_ReadsAreCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	brief := &model.Brief{ID: "b1", Topics: []string{"a"}, Status: model.StatusQueued}
	if err := s.CreateBrief(ctx, brief); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetBrief(ctx, "b1")
	got.Topics[0] = "mutated"
	got.Status = model.StatusError

	again, _ := s.GetBrief(ctx, "b1")
	if again.Topics[0] != "a" || again.Status != model.StatusQueued {
		t.Error("mutating a read result leaked into the store")
	}
}

func TestMemoryStore_RendersAppendOnly(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := s.AppendRender(ctx, &model.Render{ID: string(rune('a' + i)), BriefID: "b1", Method: "binaural-mix/v1"})
		if err != nil {
			t.Fatal(err)
		}
	}

	renders, err := s.ListRenders(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if len(renders) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(renders))
	}
	if renders[0].ID != "a" || renders[1].ID != "b" {
		t.Error("renders not in append order")
	}
}

func TestMemoryStore_LoopsByMood(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	loops := []model.LoopAsset{
		{ContentHash: "h1", Moods: []model.Mood{model.MoodCalm}, Type: model.LoopTypeAmbient},
		{ContentHash: "h2", Moods: []model.Mood{model.MoodCalm, model.MoodFocus}, Type: model.LoopTypePad},
		{ContentHash: "h3", Moods: []model.Mood{model.MoodEnergy}, Type: model.LoopTypeNature},
	}
	for i := range loops {
		if err := s.PutLoop(ctx, &loops[i]); err != nil {
			t.Fatal(err)
		}
	}

	calm, err := s.ListLoopsByMood(ctx, model.MoodCalm)
	if err != nil {
		t.Fatal(err)
	}
	if len(calm) != 2 {
		t.Errorf("expected 2 calm loops, got %d", len(calm))
	}

	energy, _ := s.ListLoopsByMood(ctx, model.MoodEnergy)
	if len(energy) != 1 || energy[0].ContentHash != "h3" {
		t.Errorf("unexpected energy loops: %+v", energy)
	}
}
