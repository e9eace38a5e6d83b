package model

import "time"

// Response actions for an advice session.
const (
	ActionCompleted = "completed"
	ActionDismissed = "dismissed"
	ActionSnoozed   = "snoozed"
)

// AdviceSession is one delivered piece of micro-advice and, once the user
// reacts, its outcome. The response is set exactly once; repeated identical
// submissions are no-ops.
type AdviceSession struct {
	ID        string           `json:"id"`
	OwnerID   int64            `json:"owner_id"`
	CreatedAt time.Time        `json:"created_at"`
	Response  *SessionResponse `json:"response,omitempty"`
}

// SessionResponse records how the user reacted to an advice session.
type SessionResponse struct {
	Action      string     `json:"action"`
	RespondedAt time.Time  `json:"responded_at"`
	Rating      *int       `json:"rating,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
