package model

import "time"

// Chronotype classifications.
const (
	ChronotypeEarlyBird    = "early_bird"
	ChronotypeNightOwl     = "night_owl"
	ChronotypeIntermediate = "intermediate"
)

// InterventionWindow is a time-of-day range during which advice is most
// likely to land, with an effectiveness estimate in [0,1].
type InterventionWindow struct {
	StartHour      int     `json:"start_hour"`
	EndHour        int     `json:"end_hour"`
	Effectiveness  float64 `json:"effectiveness_score"`
	Type           string  `json:"intervention_type"`
	FrequencyLimit int     `json:"frequency_limit"`
}

// CircadianProfile is the inferred daily rhythm for one owner. One row per
// owner; regenerated at most every seven days unless forced.
type CircadianProfile struct {
	ID              int64                `json:"id"`
	OwnerID         int64                `json:"owner_id"`
	Chronotype      string               `json:"chronotype"`
	WakeTime        string               `json:"natural_wake_time"`
	SleepTime       string               `json:"natural_sleep_time"`
	PeakHours       []int                `json:"peak_energy_hours"`
	LowHours        []int                `json:"low_energy_hours"`
	StressPeakHours []int                `json:"stress_peak_hours"`
	Windows         []InterventionWindow `json:"intervention_windows"`
	Confidence      float64              `json:"confidence"`
	UpdatedAt       time.Time            `json:"updated_at"`
}
