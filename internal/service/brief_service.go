package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/sonicbrief/api/internal/model"
	"github.com/sonicbrief/api/internal/store"
)

// TaskTypeCompose is the asynq task type for one pipeline run.
const TaskTypeCompose = "brief:compose"

// ErrMissingSubject is returned when neither topics nor instructions are
// present; no partial record is persisted in that case.
var ErrMissingSubject = fmt.Errorf("either topics or instructions is required")

// TaskEnqueuer is the slice of asynq.Client the brief service needs.
// Abstracted so handler tests run without Redis.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// BriefService handles brief creation and status reads. The pipeline itself
// runs in the compose worker; creation only persists the record and fires
// the background task.
type BriefService struct {
	store    store.Store
	enqueuer TaskEnqueuer
}

func NewBriefService(st store.Store, enqueuer TaskEnqueuer) *BriefService {
	return &BriefService{
		store:    st,
		enqueuer: enqueuer,
	}
}

// CreateBrief validates the request, persists a queued brief with its
// planned segments, and enqueues the compose task. The caller gets the
// queued acknowledgment immediately; it never blocks on the pipeline.
func (s *BriefService) CreateBrief(ctx context.Context, ownerID string, req *model.CreateBriefRequest) (*model.CreateBriefResponse, error) {
	if len(req.Topics) == 0 && req.Instructions == "" {
		return nil, ErrMissingSubject
	}

	now := time.Now()
	brief := &model.Brief{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Mood:         model.Mood(req.Mood),
		Topics:       req.Topics,
		Instructions: req.Instructions,
		DurationSec:  req.DurationSec,
		Status:       model.StatusQueued,
		CreatedAt:    now,
	}

	if err := s.store.CreateBrief(ctx, brief); err != nil {
		return nil, fmt.Errorf("failed to save brief: %w", err)
	}

	if err := s.store.PutSegments(ctx, brief.ID, PlanSegments(brief)); err != nil {
		return nil, fmt.Errorf("failed to save segments: %w", err)
	}

	task, err := newComposeTask(brief.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// MaxRetry 0: a failed pipeline is terminal for that brief; the caller
	// resubmits as a new request.
	_, err = s.enqueuer.Enqueue(task,
		asynq.Queue("compose"),
		asynq.MaxRetry(0),
		asynq.Timeout(10*time.Minute),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	return &model.CreateBriefResponse{
		ID:        brief.ID,
		Status:    model.StatusQueued,
		CreatedAt: now,
	}, nil
}

// GetBrief returns the polling view of a brief.
func (s *BriefService) GetBrief(ctx context.Context, briefID string) (*model.BriefStatusResponse, error) {
	brief, err := s.store.GetBrief(ctx, briefID)
	if err != nil {
		return nil, err
	}

	return &model.BriefStatusResponse{
		ID:           brief.ID,
		Status:       brief.Status,
		Mood:         brief.Mood,
		Topics:       brief.Topics,
		Instructions: brief.Instructions,
		DurationSec:  brief.DurationSec,
		Script:       brief.Script,
		AudioURL:     brief.AudioURL,
		ErrorMessage: brief.ErrorMessage,
		CreatedAt:    brief.CreatedAt,
		CompletedAt:  brief.CompletedAt,
	}, nil
}

// ListRenders returns the render history of a brief.
func (s *BriefService) ListRenders(ctx context.Context, briefID string) (*model.RenderListResponse, error) {
	if _, err := s.store.GetBrief(ctx, briefID); err != nil {
		return nil, err
	}
	renders, err := s.store.ListRenders(ctx, briefID)
	if err != nil {
		return nil, err
	}
	return &model.RenderListResponse{BriefID: briefID, Renders: renders}, nil
}

// ListSegments returns the ordered segments of a brief.
func (s *BriefService) ListSegments(ctx context.Context, briefID string) (*model.SegmentListResponse, error) {
	if _, err := s.store.GetBrief(ctx, briefID); err != nil {
		return nil, err
	}
	segments, err := s.store.ListSegments(ctx, briefID)
	if err != nil {
		return nil, err
	}
	return &model.SegmentListResponse{BriefID: briefID, Segments: segments}, nil
}

// PlanSegments derives the ordered sub-units of a brief. Short briefs get a
// single content segment; longer ones are book-ended by intro and outro.
// SequenceOrder is unique within the brief and defines playback order.
func PlanSegments(brief *model.Brief) []model.Segment {
	now := time.Now()

	newSegment := func(t model.SegmentType, seq, durationSec int) model.Segment {
		return model.Segment{
			ID:            uuid.New().String(),
			BriefID:       brief.ID,
			Type:          t,
			SequenceOrder: seq,
			DurationSec:   durationSec,
			Status:        model.SegmentPending,
			CreatedAt:     now,
		}
	}

	const bookendSec = 5
	if brief.DurationSec < 4*bookendSec {
		return []model.Segment{newSegment(model.SegmentContent, 0, brief.DurationSec)}
	}

	return []model.Segment{
		newSegment(model.SegmentIntroMusic, 0, bookendSec),
		newSegment(model.SegmentContent, 1, brief.DurationSec-2*bookendSec),
		newSegment(model.SegmentOutro, 2, bookendSec),
	}
}

func newComposeTask(briefID string) (*asynq.Task, error) {
	payload, err := json.Marshal(model.ComposeTaskPayload{BriefID: briefID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeCompose, payload), nil
}
