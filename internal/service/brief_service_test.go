package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"

	"github.com/sonicbrief/api/internal/model"
	"github.com/sonicbrief/api/internal/store"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func TestCreateBriefQueuesTask(t *testing.T) {
	st := store.NewMemoryStore()
	enq := &fakeEnqueuer{}
	svc := NewBriefService(st, enq)

	resp, err := svc.CreateBrief(context.Background(), "user-1", &model.CreateBriefRequest{
		Mood:        "calm",
		Topics:      []string{"rain"},
		DurationSec: 120,
	})
	if err != nil {
		t.Fatalf("CreateBrief: %v", err)
	}
	if resp.Status != model.StatusQueued {
		t.Errorf("status = %s, want %s", resp.Status, model.StatusQueued)
	}
	if resp.ID == "" {
		t.Error("response ID is empty")
	}

	if len(enq.tasks) != 1 {
		t.Fatalf("enqueued tasks = %d, want 1", len(enq.tasks))
	}
	if enq.tasks[0].Type() != TaskTypeCompose {
		t.Errorf("task type = %q, want %q", enq.tasks[0].Type(), TaskTypeCompose)
	}
	var payload model.ComposeTaskPayload
	if err := json.Unmarshal(enq.tasks[0].Payload(), &payload); err != nil {
		t.Fatalf("payload unmarshal: %v", err)
	}
	if payload.BriefID != resp.ID {
		t.Errorf("payload brief ID = %q, want %q", payload.BriefID, resp.ID)
	}

	brief, err := st.GetBrief(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("GetBrief: %v", err)
	}
	if brief.OwnerID != "user-1" {
		t.Errorf("owner = %q, want user-1", brief.OwnerID)
	}
	if brief.Status != model.StatusQueued {
		t.Errorf("stored status = %s, want %s", brief.Status, model.StatusQueued)
	}
}

func TestCreateBriefRequiresSubject(t *testing.T) {
	svc := NewBriefService(store.NewMemoryStore(), &fakeEnqueuer{})

	_, err := svc.CreateBrief(context.Background(), "user-1", &model.CreateBriefRequest{
		Mood:        "calm",
		DurationSec: 120,
	})
	if err != ErrMissingSubject {
		t.Fatalf("err = %v, want ErrMissingSubject", err)
	}
}

func TestGetBriefNotFound(t *testing.T) {
	svc := NewBriefService(store.NewMemoryStore(), &fakeEnqueuer{})
	if _, err := svc.GetBrief(context.Background(), "nope"); err != store.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPlanSegmentsShortBrief(t *testing.T) {
	brief := &model.Brief{ID: "b1", DurationSec: 15}
	segments := PlanSegments(brief)
	if len(segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(segments))
	}
	if segments[0].Type != model.SegmentContent {
		t.Errorf("type = %s, want %s", segments[0].Type, model.SegmentContent)
	}
	if segments[0].DurationSec != 15 {
		t.Errorf("duration = %d, want 15", segments[0].DurationSec)
	}
}

func TestPlanSegmentsBookends(t *testing.T) {
	brief := &model.Brief{ID: "b1", DurationSec: 120}
	segments := PlanSegments(brief)
	if len(segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(segments))
	}

	wantTypes := []model.SegmentType{model.SegmentIntroMusic, model.SegmentContent, model.SegmentOutro}
	total := 0
	for i, seg := range segments {
		if seg.Type != wantTypes[i] {
			t.Errorf("segment %d type = %s, want %s", i, seg.Type, wantTypes[i])
		}
		if seg.SequenceOrder != i {
			t.Errorf("segment %d sequence = %d, want %d", i, seg.SequenceOrder, i)
		}
		if seg.Status != model.SegmentPending {
			t.Errorf("segment %d status = %s, want pending", i, seg.Status)
		}
		total += seg.DurationSec
	}
	if total != 120 {
		t.Errorf("segment durations sum to %d, want 120", total)
	}
}
