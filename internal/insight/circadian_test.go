package insight

import (
	"math"
	"testing"
	"time"

	"github.com/avandermeer/wellspring/internal/model"
)

var profileNow = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

func metricsOverDays(n int, bedtime *int) []model.DailyMetric {
	out := make([]model.DailyMetric, n)
	for i := 0; i < n; i++ {
		out[i] = model.DailyMetric{
			OwnerID:        1,
			Date:           startOfDay(profileNow).AddDate(0, 0, -i),
			SleepHours:     7.5,
			Steps:          6000,
			Mood:           3,
			Stress:         3,
			Energy:         3,
			BedtimeMinutes: bedtime,
		}
	}
	return out
}

func TestSparseDataReturnsDefaultProfile(t *testing.T) {
	late := 25 * 60 // extreme night owl bedtime; must not matter
	for n := 0; n < 7; n++ {
		p := BuildProfile(1, metricsOverDays(n, &late), profileNow)
		if p.Chronotype != model.ChronotypeIntermediate {
			t.Errorf("n=%d: chronotype = %q, want intermediate", n, p.Chronotype)
		}
		if p.Confidence != DefaultProfileConfidence {
			t.Errorf("n=%d: confidence = %v, want %v", n, p.Confidence, DefaultProfileConfidence)
		}
		if len(p.Windows) != 2 {
			t.Errorf("n=%d: windows = %d, want 2 defaults", n, len(p.Windows))
		}
	}
}

func TestRecencyFactorFullWithFreshSample(t *testing.T) {
	metrics := metricsOverDays(30, nil)
	conf := ProfileConfidence(metrics, profileNow)

	// quantity = 1.0 (30/30), consistency neutral 0.5 (no bedtimes),
	// recency = 1.0 (latest sample today).
	want := 0.4*1.0 + 0.3*0.5 + 0.3*1.0
	if math.Abs(conf-want) > 1e-9 {
		t.Errorf("confidence = %v, want %v", conf, want)
	}
}

func TestRecencyDecaysOverAWeek(t *testing.T) {
	metrics := metricsOverDays(30, nil)
	for i := range metrics {
		metrics[i].Date = metrics[i].Date.AddDate(0, 0, -10)
	}
	conf := ProfileConfidence(metrics, profileNow)

	want := 0.4*1.0 + 0.3*0.5 // recency exhausted after 7 days
	if math.Abs(conf-want) > 1e-9 {
		t.Errorf("confidence = %v, want %v", conf, want)
	}
}

func TestConsistencyRewardsSteadyBedtimes(t *testing.T) {
	steady := 23 * 60
	metrics := metricsOverDays(30, &steady)
	conf := ProfileConfidence(metrics, profileNow)

	// Zero variance: quantity 1.0, consistency 1.0, recency 1.0.
	if math.Abs(conf-1.0) > 1e-9 {
		t.Errorf("confidence = %v, want 1.0", conf)
	}
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 30, 90} {
		for _, ageDays := range []int{0, 3, 30} {
			metrics := metricsOverDays(n, nil)
			for i := range metrics {
				metrics[i].Date = metrics[i].Date.AddDate(0, 0, -ageDays)
			}
			conf := ProfileConfidence(metrics, profileNow)
			if conf < 0 || conf > 1 {
				t.Errorf("n=%d age=%d: confidence %v outside [0,1]", n, ageDays, conf)
			}
		}
	}
}

func TestChronotypeFromBedtimes(t *testing.T) {
	early := 22 * 60
	late := 1 * 60 // 01:00, wraps past midnight

	p := BuildProfile(1, metricsOverDays(14, &early), profileNow)
	if p.Chronotype != model.ChronotypeEarlyBird {
		t.Errorf("22:00 bedtime chronotype = %q, want early_bird", p.Chronotype)
	}

	p = BuildProfile(1, metricsOverDays(14, &late), profileNow)
	if p.Chronotype != model.ChronotypeNightOwl {
		t.Errorf("01:00 bedtime chronotype = %q, want night_owl", p.Chronotype)
	}

	p = BuildProfile(1, metricsOverDays(14, nil), profileNow)
	if p.Chronotype != model.ChronotypeIntermediate {
		t.Errorf("no bedtimes chronotype = %q, want intermediate", p.Chronotype)
	}
}

func TestWindowEffectivenessInRange(t *testing.T) {
	steady := 23 * 60
	p := BuildProfile(1, metricsOverDays(45, &steady), profileNow)
	if len(p.Windows) == 0 {
		t.Fatal("expected intervention windows")
	}
	for _, w := range p.Windows {
		if w.Effectiveness < 0 || w.Effectiveness > 1 {
			t.Errorf("window %s effectiveness %v outside [0,1]", w.Type, w.Effectiveness)
		}
		if w.StartHour >= w.EndHour {
			t.Errorf("window %s: start %d >= end %d", w.Type, w.StartHour, w.EndHour)
		}
	}
}
