package model

import "time"

// EmotionalAnalysis is one classification of an owner's emotional state,
// appended as an audit record and never mutated.
type EmotionalAnalysis struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	State      string    `json:"state"`
	Confidence float64   `json:"confidence"`
	Factors    []string  `json:"contributing_factors"`
	Trend      string    `json:"trend"`
	Immediate  []string  `json:"immediate_recommendations"`
	Preventive []string  `json:"preventive_recommendations"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}
