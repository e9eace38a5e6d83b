package insight

import (
	"testing"
	"time"

	"github.com/avandermeer/wellspring/internal/model"
)

func TestComputeLifeScoreNeutralDay(t *testing.T) {
	m := model.DailyMetric{
		OwnerID:    1,
		Date:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		SleepHours: 8,
		Mood:       3,
		Stress:     3,
		Energy:     3,
	}
	s := ComputeLifeScore(m)

	if s.StressScore != 6 {
		t.Errorf("stress score = %v, want 6", s.StressScore)
	}
	if s.EnergyScore != 6 {
		t.Errorf("energy score = %v, want 6", s.EnergyScore)
	}
	if s.SleepScore != 10 {
		t.Errorf("sleep score = %v, want 10", s.SleepScore)
	}
}

func TestComputeLifeScoreBounds(t *testing.T) {
	for stress := 1; stress <= 5; stress++ {
		for energy := 1; energy <= 5; energy++ {
			for _, sleep := range []float64{0, 4, 8, 12, 24} {
				s := ComputeLifeScore(model.DailyMetric{Stress: stress, Energy: energy, SleepHours: sleep})
				for name, v := range map[string]float64{
					"stress": s.StressScore, "energy": s.EnergyScore,
					"sleep": s.SleepScore, "overall": s.Overall,
				} {
					if v < 1 || v > 10 {
						t.Fatalf("%s score %v outside [1,10] (stress=%d energy=%d sleep=%v)",
							name, v, stress, energy, sleep)
					}
				}
			}
		}
	}
}

func TestComputeLifeScoreInvertsStress(t *testing.T) {
	calm := ComputeLifeScore(model.DailyMetric{Stress: 1, Energy: 3, SleepHours: 8})
	tense := ComputeLifeScore(model.DailyMetric{Stress: 5, Energy: 3, SleepHours: 8})
	if calm.StressScore <= tense.StressScore {
		t.Errorf("stress inversion: calm %v <= tense %v", calm.StressScore, tense.StressScore)
	}
}
