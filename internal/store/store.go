// Package store is the Brief Record Store: the single source of truth for
// brief status. It is an explicit injected abstraction with a durable Redis
// implementation and an in-memory one for tests, selected by configuration
// and never by falling back at runtime when the backend call fails.
package store

import (
	"context"
	"errors"

	"github.com/sonicbrief/api/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store holds briefs, their renders and segments, and the loop-asset registry.
// Only the compose worker writes brief status and audio URL after creation.
type Store interface {
	CreateBrief(ctx context.Context, brief *model.Brief) error
	GetBrief(ctx context.Context, id string) (*model.Brief, error)
	UpdateBrief(ctx context.Context, brief *model.Brief) error

	AppendRender(ctx context.Context, render *model.Render) error
	ListRenders(ctx context.Context, briefID string) ([]model.Render, error)

	PutSegments(ctx context.Context, briefID string, segments []model.Segment) error
	ListSegments(ctx context.Context, briefID string) ([]model.Segment, error)

	PutLoop(ctx context.Context, loop *model.LoopAsset) error
	GetLoop(ctx context.Context, contentHash string) (*model.LoopAsset, error)
	ListLoopsByMood(ctx context.Context, mood model.Mood) ([]model.LoopAsset, error)
}
