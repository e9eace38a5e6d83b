package insight

import "github.com/avandermeer/wellspring/internal/model"

// ComputeLifeScore derives the 1-10 sub-scores and overall rating from one
// day's raw metrics. Stress is inverted (low stress scores high); sleep is
// scored by distance from an eight-hour night.
func ComputeLifeScore(m model.DailyMetric) model.LifeScore {
	stress := clampScore(float64(6-m.Stress) * 2)
	energy := clampScore(float64(m.Energy) * 2)

	dev := m.SleepHours - 8
	if dev < 0 {
		dev = -dev
	}
	sleep := clampScore(10 - dev*1.5)

	return model.LifeScore{
		OwnerID:     m.OwnerID,
		Date:        m.Date,
		StressScore: round1(stress),
		EnergyScore: round1(energy),
		SleepScore:  round1(sleep),
		Overall:     round1((stress + energy + sleep) / 3),
	}
}

func clampScore(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
