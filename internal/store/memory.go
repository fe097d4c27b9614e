package store

import (
	"context"
	"sync"

	"github.com/sonicbrief/api/internal/model"
)

// MemoryStore is the in-memory Store implementation used in tests and
// local development without Redis. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	briefs   map[string]model.Brief
	renders  map[string][]model.Render
	segments map[string][]model.Segment
	loops    map[string]model.LoopAsset
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		briefs:   make(map[string]model.Brief),
		renders:  make(map[string][]model.Render),
		segments: make(map[string][]model.Segment),
		loops:    make(map[string]model.LoopAsset),
	}
}

func (s *MemoryStore) CreateBrief(ctx context.Context, brief *model.Brief) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.briefs[brief.ID] = cloneBrief(brief)
	return nil
}

func (s *MemoryStore) GetBrief(ctx context.Context, id string) (*model.Brief, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	brief, ok := s.briefs[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneBrief(&brief)
	return &out, nil
}

func (s *MemoryStore) UpdateBrief(ctx context.Context, brief *model.Brief) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.briefs[brief.ID]; !ok {
		return ErrNotFound
	}
	s.briefs[brief.ID] = cloneBrief(brief)
	return nil
}

func (s *MemoryStore) AppendRender(ctx context.Context, render *model.Render) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renders[render.BriefID] = append(s.renders[render.BriefID], *render)
	return nil
}

func (s *MemoryStore) ListRenders(ctx context.Context, briefID string) ([]model.Render, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Render, len(s.renders[briefID]))
	copy(out, s.renders[briefID])
	return out, nil
}

func (s *MemoryStore) PutSegments(ctx context.Context, briefID string, segments []model.Segment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Segment, len(segments))
	copy(out, segments)
	s.segments[briefID] = out
	return nil
}

func (s *MemoryStore) ListSegments(ctx context.Context, briefID string) ([]model.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Segment, len(s.segments[briefID]))
	copy(out, s.segments[briefID])
	return out, nil
}

func (s *MemoryStore) PutLoop(ctx context.Context, loop *model.LoopAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loops[loop.ContentHash] = *loop
	return nil
}

func (s *MemoryStore) GetLoop(ctx context.Context, contentHash string) (*model.LoopAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loop, ok := s.loops[contentHash]
	if !ok {
		return nil, ErrNotFound
	}
	return &loop, nil
}

func (s *MemoryStore) ListLoopsByMood(ctx context.Context, mood model.Mood) ([]model.LoopAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.LoopAsset
	for _, loop := range s.loops {
		for _, m := range loop.Moods {
			if m == mood {
				out = append(out, loop)
				break
			}
		}
	}
	return out, nil
}

// cloneBrief copies a brief so callers can't mutate stored state through
// shared slices.
func cloneBrief(b *model.Brief) model.Brief {
	out := *b
	if b.Topics != nil {
		out.Topics = make([]string, len(b.Topics))
		copy(out.Topics, b.Topics)
	}
	return out
}
