package model

import "time"

// LoopAsset is a stored ambient audio file usable as a background layer.
// ContentHash (SHA-256 of the file bytes) is the de-duplication key.
type LoopAsset struct {
	ContentHash string    `json:"contentHash"`
	Moods       []Mood    `json:"moods"`
	MusicalKey  string    `json:"musicalKey,omitempty"`
	Tempo       int       `json:"tempo,omitempty"`
	Type        LoopType  `json:"type"`
	DurationSec float64   `json:"durationSec"`
	License     string    `json:"license,omitempty"`
	StorageKey  string    `json:"storageKey"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RegisterLoopRequest carries the metadata fields of a multipart loop upload.
// The audio file itself arrives as the "file" form part.
type RegisterLoopRequest struct {
	Moods      []string `json:"moods" validate:"required,min=1,max=3,dive,min=1,max=64"`
	MusicalKey string   `json:"musicalKey" validate:"omitempty,max=8"`
	Tempo      int      `json:"tempo" validate:"omitempty,min=20,max=300"`
	Type       string   `json:"type" validate:"required,oneof=ambient pad nature"`
	License    string   `json:"license" validate:"omitempty,max=200"`
}

// RegisterLoopResponse reports the stored (or pre-existing) loop asset.
type RegisterLoopResponse struct {
	Loop      LoopAsset `json:"loop"`
	Duplicate bool      `json:"duplicate"`
}

// LoopListResponse wraps a loop listing.
type LoopListResponse struct {
	Loops []LoopAsset `json:"loops"`
}
