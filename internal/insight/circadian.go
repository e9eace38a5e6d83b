package insight

import (
	"fmt"
	"time"

	"github.com/avandermeer/wellspring/internal/model"
)

const (
	// minProfileDays is the least history circadian inference will run on;
	// below it the fixed default profile is returned.
	minProfileDays = 7

	// quantityTargetDays is the sample count at which the quantity
	// confidence factor saturates.
	quantityTargetDays = 30

	// bedtimeVarianceCap caps the bedtime variance (minutes) used by the
	// consistency confidence factor.
	bedtimeVarianceCap = 120.0

	// recencyHorizonDays is how many days without a sample it takes for
	// the recency confidence factor to reach zero.
	recencyHorizonDays = 7.0
)

// Confidence factor weights. They sum to 1 so the blended confidence stays
// in [0,1] when each factor is clamped first.
const (
	quantityWeight    = 0.4
	consistencyWeight = 0.3
	recencyWeight     = 0.3
)

// Bedtime minute boundaries (after midnight, wrapped past 24h) separating
// chronotypes: asleep by 22:30 reads early bird, not until 00:30 reads
// night owl.
const (
	earlyBirdBedtimeMax = 22*60 + 30
	nightOwlBedtimeMin  = 24*60 + 30
)

// BuildProfile infers an owner's circadian profile from up to 90 days of
// metrics. With fewer than seven days of data it returns DefaultProfile
// unchanged, regardless of content.
func BuildProfile(ownerID int64, metrics []model.DailyMetric, now time.Time) model.CircadianProfile {
	if len(metrics) < minProfileDays {
		return DefaultProfile(ownerID, now)
	}

	chronotype := inferChronotype(metrics)
	confidence := ProfileConfidence(metrics, now)

	bedtimes := wrappedBedtimes(metrics)
	sleepMinutes := avgOr(bedtimes, 23*60)

	var sleepSum float64
	for _, m := range metrics {
		sleepSum += m.SleepHours
	}
	avgSleep := sleepSum / float64(len(metrics))
	if avgSleep <= 0 {
		avgSleep = 8
	}
	wakeMinutes := sleepMinutes + avgSleep*60

	profile := model.CircadianProfile{
		OwnerID:    ownerID,
		Chronotype: chronotype,
		SleepTime:  formatClock(sleepMinutes),
		WakeTime:   formatClock(wakeMinutes),
		Confidence: confidence,
		UpdatedAt:  now,
	}
	fillHourBuckets(&profile, metrics)
	profile.Windows = interventionWindows(profile)
	return profile
}

// ProfileConfidence blends three clamped factors: sample quantity (weight
// 0.4), bedtime consistency (0.3, neutral 0.5 under seven bedtime samples),
// and recency of the latest sample (0.3).
func ProfileConfidence(metrics []model.DailyMetric, now time.Time) float64 {
	quantity := clamp01(float64(len(metrics)) / quantityTargetDays)

	consistency := 0.5
	bedtimes := wrappedBedtimes(metrics)
	if len(bedtimes) >= minProfileDays {
		v := variance(bedtimes)
		consistency = 1 - clamp01(v/bedtimeVarianceCap)
	}

	recency := 0.0
	if latest := latestDate(metrics); !latest.IsZero() {
		days := startOfDay(now).Sub(startOfDay(latest)).Hours() / 24
		recency = clamp01(1 - days/recencyHorizonDays)
	}

	return clamp01(quantity*quantityWeight + consistency*consistencyWeight + recency*recencyWeight)
}

func inferChronotype(metrics []model.DailyMetric) string {
	bedtimes := wrappedBedtimes(metrics)
	if len(bedtimes) == 0 {
		return model.ChronotypeIntermediate
	}
	avg := mean(bedtimes)
	switch {
	case avg <= earlyBirdBedtimeMax:
		return model.ChronotypeEarlyBird
	case avg >= nightOwlBedtimeMin:
		return model.ChronotypeNightOwl
	default:
		return model.ChronotypeIntermediate
	}
}

// fillHourBuckets assigns peak/low energy and stress-peak hours from the
// chronotype baseline, shifted by how the owner's average stress and energy
// compare to the scale midpoint.
func fillHourBuckets(p *model.CircadianProfile, metrics []model.DailyMetric) {
	switch p.Chronotype {
	case model.ChronotypeEarlyBird:
		p.PeakHours = []int{7, 8, 9}
		p.LowHours = []int{13, 14}
		p.StressPeakHours = []int{16, 17}
	case model.ChronotypeNightOwl:
		p.PeakHours = []int{17, 18, 19}
		p.LowHours = []int{8, 9}
		p.StressPeakHours = []int{10, 11}
	default:
		p.PeakHours = []int{9, 10, 11}
		p.LowHours = []int{14, 15}
		p.StressPeakHours = []int{9, 17}
	}

	var stressSum, energySum float64
	for _, m := range metrics {
		stressSum += float64(m.Stress)
		energySum += float64(m.Energy)
	}
	n := float64(len(metrics))

	// Chronically high stress pulls the stress peak earlier; chronically
	// low energy extends the afternoon trough.
	if stressSum/n >= 4 {
		for i := range p.StressPeakHours {
			p.StressPeakHours[i]--
		}
	}
	if energySum/n <= 2 {
		p.LowHours = append(p.LowHours, p.LowHours[len(p.LowHours)-1]+1)
	}
}

func interventionWindows(p model.CircadianProfile) []model.InterventionWindow {
	peakStart := p.PeakHours[0]
	lowStart := p.LowHours[0]

	windows := []model.InterventionWindow{
		{
			StartHour:      peakStart,
			EndHour:        peakStart + 2,
			Effectiveness:  round2(0.5 + 0.4*p.Confidence),
			Type:           "habit_building",
			FrequencyLimit: 2,
		},
		{
			StartHour:      lowStart,
			EndHour:        lowStart + 1,
			Effectiveness:  round2(0.4 + 0.3*p.Confidence),
			Type:           "movement",
			FrequencyLimit: 1,
		},
	}

	// Evening reflection window two hours before natural sleep time.
	if sleepHour := clockHour(p.SleepTime); sleepHour >= 2 {
		windows = append(windows, model.InterventionWindow{
			StartHour:      sleepHour - 2,
			EndHour:        sleepHour,
			Effectiveness:  round2(0.4 + 0.2*p.Confidence),
			Type:           "reflection",
			FrequencyLimit: 1,
		})
	}
	return windows
}

// wrappedBedtimes returns bedtime samples in minutes after midnight, with
// times before 06:00 treated as past-midnight (so 00:30 sorts after 23:00).
func wrappedBedtimes(metrics []model.DailyMetric) []float64 {
	var out []float64
	for _, m := range metrics {
		if m.BedtimeMinutes == nil {
			continue
		}
		v := float64(*m.BedtimeMinutes)
		if v < 6*60 {
			v += 24 * 60
		}
		out = append(out, v)
	}
	return out
}

func latestDate(metrics []model.DailyMetric) time.Time {
	var latest time.Time
	for _, m := range metrics {
		if m.Date.After(latest) {
			latest = m.Date
		}
	}
	return latest
}

func avgOr(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	return mean(values)
}

func formatClock(minutes float64) string {
	total := int(minutes+0.5) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func clockHour(clock string) int {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0
	}
	return h
}

func round2(v float64) float64 {
	return round1(v*10) / 10
}
