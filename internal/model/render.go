package model

import "time"

// Render records one successful mix for a brief. Append-only; re-renders
// add further entries.
type Render struct {
	ID          string            `json:"id"` // ULID, sortable by creation time
	BriefID     string            `json:"briefId"`
	Method      string            `json:"method"` // e.g. "binaural-mix/v1"
	URL         string            `json:"url"`
	Diagnostics RenderDiagnostics `json:"diagnostics"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// RenderDiagnostics holds audit metadata for one render. Not required for
// playback.
type RenderDiagnostics struct {
	LoopKeys    []string `json:"loopKeys,omitempty"`
	DurationSec int      `json:"durationSec"`
	Mood        Mood     `json:"mood"`
}

// RenderListResponse wraps the render history of a brief.
type RenderListResponse struct {
	BriefID string   `json:"briefId"`
	Renders []Render `json:"renders"`
}
