package insight

import (
	"time"

	"github.com/avandermeer/wellspring/internal/model"
)

// Shared fallback values. Every analyzer that cannot read its inputs falls
// back to these instead of failing, and callers mark the composed result
// degraded. Keep them in one place; duplicated defaults drift.

// DefaultProfileConfidence is the confidence assigned to a circadian profile
// built without enough history to infer anything.
const DefaultProfileConfidence = 0.3

// DefaultLifeScore is the neutral life score substituted when no score
// record exists for the owner.
func DefaultLifeScore(ownerID int64, date time.Time) model.LifeScore {
	return model.LifeScore{
		OwnerID:     ownerID,
		Date:        startOfDay(date),
		StressScore: 5,
		EnergyScore: 5,
		SleepScore:  5,
		Overall:     5,
	}
}

// NeutralMetric is the midpoint metric record substituted when an owner has
// no samples at all.
func NeutralMetric(ownerID int64, date time.Time) model.DailyMetric {
	return model.DailyMetric{
		OwnerID:    ownerID,
		Date:       startOfDay(date),
		SleepHours: 7,
		Mood:       3,
		Stress:     3,
		Energy:     3,
	}
}

// DefaultProfile is the fixed circadian profile used when fewer than seven
// days of metrics exist. Guard against overfitting sparse data: an
// intermediate chronotype, conventional wake/sleep times, and two broad
// intervention windows at low confidence.
func DefaultProfile(ownerID int64, now time.Time) model.CircadianProfile {
	return model.CircadianProfile{
		OwnerID:         ownerID,
		Chronotype:      model.ChronotypeIntermediate,
		WakeTime:        "07:00",
		SleepTime:       "23:00",
		PeakHours:       []int{9, 10, 11},
		LowHours:        []int{14, 15},
		StressPeakHours: []int{9, 17},
		Windows: []model.InterventionWindow{
			{StartHour: 8, EndHour: 10, Effectiveness: 0.6, Type: "habit_building", FrequencyLimit: 2},
			{StartHour: 19, EndHour: 21, Effectiveness: 0.5, Type: "reflection", FrequencyLimit: 1},
		},
		Confidence: DefaultProfileConfidence,
		UpdatedAt:  now,
	}
}
