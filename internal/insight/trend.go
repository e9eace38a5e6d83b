// Package insight holds the wellness signal analytics engine: stateless
// functions that turn raw time-series health and interaction records into
// the derived signals used for personalization. Every function here is pure;
// persistence of derived records belongs to the callers.
package insight

import "time"

// Direction classifies which way a series is moving.
type Direction string

const (
	Improving Direction = "improving"
	Stable    Direction = "stable"
	Declining Direction = "declining"
)

// Trend thresholds, one named constant per semantic use. These differ on
// purpose: a life score moves on a 1-10 scale, the combined emotional trend
// on roughly [-1,1], and a single 1-5 metric in between. Do not unify them.
const (
	// WellnessTrendThreshold applies to long-term life-score history.
	WellnessTrendThreshold = 0.5
	// EmotionalTrendThreshold applies to the combined short-term
	// mood/stress/energy trend.
	EmotionalTrendThreshold = 0.3
	// MetricTrendThreshold applies to a single metric's five most
	// recent samples.
	MetricTrendThreshold = 0.1
)

// Point is one sample in a chronological series.
type Point struct {
	At    time.Time `json:"at"`
	Value float64   `json:"value"`
}

// Trend splits a chronological series into halves (the first half takes the
// extra element when the length is odd) and compares their means against the
// given threshold. Fewer than two points is always Stable.
func Trend(points []Point, threshold float64) Direction {
	if len(points) < 2 {
		return Stable
	}

	split := (len(points) + 1) / 2
	first := meanPoints(points[:split])
	second := meanPoints(points[split:])

	diff := second - first
	switch {
	case diff > threshold:
		return Improving
	case diff < -threshold:
		return Declining
	default:
		return Stable
	}
}

func meanPoints(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	return sum / float64(len(points))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
