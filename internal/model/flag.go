package model

import "time"

// FlagTypeHighDismissalRate marks an owner whose rolling dismissal rate
// indicates advice fatigue.
const FlagTypeHighDismissalRate = "high_dismissal_rate"

// WellnessFlag is a raised risk signal for one owner. One row per
// owner+type; upserted while the condition holds and deleted when it clears.
type WellnessFlag struct {
	ID        int64          `json:"id"`
	OwnerID   int64          `json:"owner_id"`
	Type      string         `json:"type"`
	Value     float64        `json:"value"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
