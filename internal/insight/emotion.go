package insight

import (
	"fmt"
	"time"

	"github.com/avandermeer/wellspring/internal/model"
)

// Emotional states the classifier can produce.
const (
	StateStressed  = "stressed"
	StateEnergetic = "energetic"
	StateTired     = "tired"
	StateBalanced  = "balanced"
	StateAnxious   = "anxious"
	StateMotivated = "motivated"
)

// Classifier maps a life score and recent metrics to an emotional state.
// The production classifier may be an external language/rule engine; the
// package ships RuleClassifier as the default.
type Classifier func(score model.LifeScore, metrics []model.DailyMetric) string

// EmotionalAssessment is the full classification output: the state, how much
// the data supports it, what drove it, and what to suggest.
type EmotionalAssessment struct {
	State      string    `json:"state"`
	Confidence float64   `json:"confidence"`
	Factors    []string  `json:"contributing_factors"`
	Trend      Direction `json:"trend"`
	Immediate  []string  `json:"immediate_recommendations"`
	Preventive []string  `json:"preventive_recommendations"`
}

// trendSampleCount is how many of the most recent samples feed the
// short-term emotional trend.
const trendSampleCount = 5

// ClassifyEmotionalState classifies the owner's current emotional state from
// the most recent ~7 days of metrics (newest first) and the latest life
// score. Sparse or stale data lowers confidence; it never raises an error.
func ClassifyEmotionalState(metrics []model.DailyMetric, score model.LifeScore, hasScore bool, classify Classifier, now time.Time) EmotionalAssessment {
	state := classify(score, metrics)
	trend := emotionalTrend(metrics)

	latest := NeutralMetric(score.OwnerID, now)
	if len(metrics) > 0 {
		latest = metrics[0]
	}

	a := EmotionalAssessment{
		State:      state,
		Confidence: emotionalConfidence(metrics, hasScore, now),
		Factors:    contributingFactors(latest, trend, now),
		Trend:      trend,
	}
	a.Immediate, a.Preventive = recommendations(state, trend)
	return a
}

// RuleClassifier is the built-in rule engine. Thresholds read the latest
// metric sample and the overall life score.
func RuleClassifier(score model.LifeScore, metrics []model.DailyMetric) string {
	if len(metrics) == 0 {
		return StateBalanced
	}
	m := metrics[0]

	switch {
	case m.Stress >= 4 && m.SleepHours < 6:
		return StateAnxious
	case m.Stress >= 4:
		return StateStressed
	case m.Energy >= 4 && m.Mood >= 4 && score.Overall >= 7:
		return StateMotivated
	case m.Energy >= 4:
		return StateEnergetic
	case m.SleepHours < 6 || m.Energy <= 2:
		return StateTired
	default:
		return StateBalanced
	}
}

// emotionalTrend compares the halves of the last five samples per metric,
// normalizes each difference to roughly [-1,1], and combines them with
// stress inverted (falling stress is improvement).
func emotionalTrend(metrics []model.DailyMetric) Direction {
	n := len(metrics)
	if n < 2 {
		return Stable
	}
	if n > trendSampleCount {
		n = trendSampleCount
	}

	// Metrics arrive newest first; the trend reads oldest to newest.
	sample := make([]model.DailyMetric, n)
	for i := 0; i < n; i++ {
		sample[i] = metrics[n-1-i]
	}

	mood := metricShift(sample, func(m model.DailyMetric) float64 { return float64(m.Mood) })
	stress := metricShift(sample, func(m model.DailyMetric) float64 { return float64(m.Stress) })
	energy := metricShift(sample, func(m model.DailyMetric) float64 { return float64(m.Energy) })

	combined := (mood - stress + energy) / 3
	switch {
	case combined > EmotionalTrendThreshold:
		return Improving
	case combined < -EmotionalTrendThreshold:
		return Declining
	default:
		return Stable
	}
}

// metricShift is the half-split mean difference for one metric, scaled by
// half the 1-5 range and clamped to [-1,1].
func metricShift(sample []model.DailyMetric, value func(model.DailyMetric) float64) float64 {
	split := (len(sample) + 1) / 2
	var firstSum, secondSum float64
	for i, m := range sample {
		if i < split {
			firstSum += value(m)
		} else {
			secondSum += value(m)
		}
	}
	first := firstSum / float64(split)
	second := secondSum / float64(len(sample)-split)

	shift := (second - first) / 2
	if shift > 1 {
		return 1
	}
	if shift < -1 {
		return -1
	}
	return shift
}

func contributingFactors(latest model.DailyMetric, trend Direction, now time.Time) []string {
	factors := make([]string, 0, 5)

	switch {
	case latest.SleepHours < 6:
		factors = append(factors, "sleep_poor")
	case latest.SleepHours > 8.5:
		factors = append(factors, "sleep_excellent")
	default:
		factors = append(factors, "sleep_good")
	}

	switch {
	case latest.Steps < 2000:
		factors = append(factors, "activity_low")
	case latest.Steps > 8000:
		factors = append(factors, "activity_high")
	default:
		factors = append(factors, "activity_moderate")
	}

	switch {
	case latest.Stress >= 4:
		factors = append(factors, "stress_elevated")
	case latest.Stress <= 2:
		factors = append(factors, "stress_low")
	default:
		factors = append(factors, "stress_normal")
	}

	factors = append(factors, fmt.Sprintf("trend_%s", trend))
	factors = append(factors, fmt.Sprintf("time_%s", timeOfDayBucket(now)))
	return factors
}

func timeOfDayBucket(t time.Time) string {
	switch h := t.Hour(); {
	case h < 6:
		return "very_early"
	case h < 12:
		return "morning"
	case h < 17:
		return "afternoon"
	case h < 21:
		return "evening"
	default:
		return "late"
	}
}

// emotionalConfidence starts at 0.5 and earns bonuses for fresh samples,
// sample count, and a real life score; capped at 1.
func emotionalConfidence(metrics []model.DailyMetric, hasScore bool, now time.Time) float64 {
	c := 0.5

	if latest := latestDate(metrics); !latest.IsZero() {
		switch age := now.Sub(latest); {
		case age < 24*time.Hour:
			c += 0.3
		case age < 48*time.Hour:
			c += 0.2
		default:
			c += 0.1
		}
	}

	c += clamp01(float64(len(metrics))/7) * 0.2

	if hasScore {
		c += 0.1
	}

	return clamp01(c)
}

// stateRecommendations is the fixed lookup of act-now and habit-forming
// suggestions per emotional state.
var stateRecommendations = map[string]struct{ immediate, preventive []string }{
	StateStressed: {
		immediate:  []string{"Take five slow breaths", "Step away from screens for ten minutes"},
		preventive: []string{"Block a daily wind-down period", "Keep caffeine before noon"},
	},
	StateAnxious: {
		immediate:  []string{"Try a grounding exercise", "Write down what is on your mind"},
		preventive: []string{"Keep a consistent sleep schedule", "Plan tomorrow before bed"},
	},
	StateTired: {
		immediate:  []string{"Take a short walk in daylight", "Drink a glass of water"},
		preventive: []string{"Move bedtime fifteen minutes earlier", "Avoid screens in the last hour of the day"},
	},
	StateBalanced: {
		immediate:  []string{"Note one thing that went well today"},
		preventive: []string{"Keep your current routine", "Check in with your energy mid-afternoon"},
	},
	StateEnergetic: {
		immediate:  []string{"Tackle your hardest task now"},
		preventive: []string{"Schedule demanding work into your peak hours"},
	},
	StateMotivated: {
		immediate:  []string{"Start the habit you have been putting off"},
		preventive: []string{"Set a weekly goal while momentum is high"},
	},
}

func recommendations(state string, trend Direction) (immediate, preventive []string) {
	rec, ok := stateRecommendations[state]
	if !ok {
		rec = stateRecommendations[StateBalanced]
	}
	immediate = append(immediate, rec.immediate...)
	preventive = append(preventive, rec.preventive...)

	switch trend {
	case Declining:
		immediate = append(immediate, "Check in with how you are feeling tonight")
		preventive = append(preventive, "Consider talking to someone you trust if this continues")
	case Improving:
		preventive = append(preventive, "Keep doing what worked this week")
	}
	return immediate, preventive
}
