package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sonicbrief/api/internal/audio"
	"github.com/sonicbrief/api/internal/client"
	"github.com/sonicbrief/api/internal/model"
	"github.com/sonicbrief/api/internal/store"
)

// LoopService manages the ambient loop registry. Loops are de-duplicated by
// the SHA-256 of their file bytes.
type LoopService struct {
	store   store.Store
	storage client.StorageClient
}

func NewLoopService(st store.Store, storage client.StorageClient) *LoopService {
	return &LoopService{
		store:   st,
		storage: storage,
	}
}

// RegisterLoop validates an uploaded WAV, uploads it under its content hash
// and records the asset. Registering identical bytes twice returns the
// existing asset with Duplicate set.
func (s *LoopService) RegisterLoop(ctx context.Context, req *model.RegisterLoopRequest, file []byte) (*model.RegisterLoopResponse, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("object storage not configured")
	}

	clip, err := audio.DecodeWAV(file)
	if err != nil {
		return nil, fmt.Errorf("invalid loop file: %w", err)
	}

	sum := sha256.Sum256(file)
	hash := hex.EncodeToString(sum[:])

	if existing, err := s.store.GetLoop(ctx, hash); err == nil {
		return &model.RegisterLoopResponse{Loop: *existing, Duplicate: true}, nil
	} else if err != store.ErrNotFound {
		return nil, err
	}

	key := fmt.Sprintf("loops/%s.wav", hash)
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(file), "audio/wav")
	if err != nil {
		return nil, fmt.Errorf("failed to upload loop: %w", err)
	}

	moods := make([]model.Mood, 0, len(req.Moods))
	for _, m := range req.Moods {
		moods = append(moods, model.Mood(m))
	}

	frames := len(clip.Samples) / clip.Channels
	loop := &model.LoopAsset{
		ContentHash: hash,
		Moods:       moods,
		MusicalKey:  req.MusicalKey,
		Tempo:       req.Tempo,
		Type:        model.LoopType(req.Type),
		DurationSec: float64(frames) / float64(clip.SampleRate),
		License:     req.License,
		StorageKey:  key,
		URL:         url,
		CreatedAt:   time.Now(),
	}

	if err := s.store.PutLoop(ctx, loop); err != nil {
		return nil, fmt.Errorf("failed to save loop: %w", err)
	}

	return &model.RegisterLoopResponse{Loop: *loop}, nil
}

// ListLoops returns loops tagged with the given mood.
func (s *LoopService) ListLoops(ctx context.Context, mood model.Mood) (*model.LoopListResponse, error) {
	loops, err := s.store.ListLoopsByMood(ctx, mood)
	if err != nil {
		return nil, err
	}
	return &model.LoopListResponse{Loops: loops}, nil
}
