package model

import "time"

// DailyMetric is one day of raw health signals for a single owner.
// There is at most one row per owner+date; re-submissions upsert.
type DailyMetric struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"owner_id"`
	Date           time.Time `json:"date"`
	SleepHours     float64   `json:"sleep_hours"`
	Steps          int       `json:"steps"`
	Mood           int       `json:"mood"`
	Stress         int       `json:"stress"`
	Energy         int       `json:"energy"`
	HeartRate      int       `json:"heart_rate"`
	BedtimeMinutes *int      `json:"bedtime_minutes,omitempty"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LifeScore is the composite 1-10 wellness rating derived from a day's
// metrics. Recomputable at any time from the underlying DailyMetric.
type LifeScore struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Date        time.Time `json:"date"`
	StressScore float64   `json:"stress_score"`
	EnergyScore float64   `json:"energy_score"`
	SleepScore  float64   `json:"sleep_score"`
	Overall     float64   `json:"overall"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
