package model

import "time"

// Brief is one user-requested audio artifact and its lifecycle state.
// Created once by the API; after that only the compose worker mutates it.
type Brief struct {
	ID           string      `json:"id"`
	OwnerID      string      `json:"ownerId"`
	Mood         Mood        `json:"mood"`
	Topics       []string    `json:"topics,omitempty"`
	Instructions string      `json:"instructions,omitempty"`
	DurationSec  int         `json:"durationSec"`
	Status       BriefStatus `json:"status"`
	Script       string      `json:"script,omitempty"`
	AudioURL     string      `json:"audioUrl,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	StartedAt    *time.Time  `json:"startedAt,omitempty"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`
}

// Subject returns the topic text the script prompt is built from:
// topics joined, or the free-text instructions.
func (b *Brief) Subject() string {
	if len(b.Topics) > 0 {
		return joinTopics(b.Topics)
	}
	return b.Instructions
}

func joinTopics(topics []string) string {
	out := ""
	for i, t := range topics {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}

// CreateBriefRequest represents the request to create a brief.
// Either topics or instructions must be present; mood is free text but
// known values (focus, energy, calm) drive the tone offset directly.
type CreateBriefRequest struct {
	Mood         string   `json:"mood" validate:"required,min=1,max=64"`
	Topics       []string `json:"topics" validate:"omitempty,max=10,dive,min=1,max=200"`
	Instructions string   `json:"instructions" validate:"omitempty,max=2000"`
	DurationSec  int      `json:"durationSec" validate:"required,min=60,max=1200"`
}

// CreateBriefResponse is the immediate acknowledgment for a queued brief.
type CreateBriefResponse struct {
	ID        string      `json:"id"`
	Status    BriefStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// BriefStatusResponse is the polling view of a brief.
type BriefStatusResponse struct {
	ID           string      `json:"id"`
	Status       BriefStatus `json:"status"`
	Mood         Mood        `json:"mood"`
	Topics       []string    `json:"topics,omitempty"`
	Instructions string      `json:"instructions,omitempty"`
	DurationSec  int         `json:"durationSec"`
	Script       string      `json:"script,omitempty"`
	AudioURL     string      `json:"audioUrl,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`
}

// ComposeTaskPayload is the asynq task body for one pipeline run.
type ComposeTaskPayload struct {
	BriefID string `json:"briefId"`
}
