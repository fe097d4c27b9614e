package model

import "time"

// Segment is an ordered sub-unit of a brief in the multi-segment flow.
// SequenceOrder is unique within a brief and defines playback order.
type Segment struct {
	ID            string        `json:"id"`
	BriefID       string        `json:"briefId"`
	Type          SegmentType   `json:"type"`
	SequenceOrder int           `json:"sequenceOrder"`
	Script        string        `json:"script,omitempty"`
	DurationSec   int           `json:"durationSec"`
	Status        SegmentStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// SegmentListResponse wraps the ordered segments of a brief.
type SegmentListResponse struct {
	BriefID  string    `json:"briefId"`
	Segments []Segment `json:"segments"`
}
