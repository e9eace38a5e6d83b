package model

import "time"

// StreakTypeDailyCompletions counts consecutive calendar days with at least
// one completed advice session.
const StreakTypeDailyCompletions = "daily_completions"

// Streak tracks consecutive-day activity for one owner and streak type.
// Invariant: Best >= Current at all times.
type Streak struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	Type         string    `json:"type"`
	Current      int       `json:"current"`
	Best         int       `json:"best"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
