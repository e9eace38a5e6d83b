package insight

import (
	"testing"
	"time"
)

func points(values ...float64) []Point {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]Point, len(values))
	for i, v := range values {
		out[i] = Point{At: base.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestTrendMonotonicIncreasing(t *testing.T) {
	series := [][]float64{
		{1, 2, 3, 4},
		{1, 2, 3, 4, 5, 6, 7},
		{2, 4, 6, 8, 10},
	}
	for _, s := range series {
		if got := Trend(points(s...), WellnessTrendThreshold); got != Improving {
			t.Errorf("Trend(%v) = %q, want %q", s, got, Improving)
		}
	}
}

func TestTrendMonotonicDecreasing(t *testing.T) {
	series := [][]float64{
		{4, 3, 2, 1},
		{10, 8, 6, 4, 2},
	}
	for _, s := range series {
		if got := Trend(points(s...), WellnessTrendThreshold); got != Declining {
			t.Errorf("Trend(%v) = %q, want %q", s, got, Declining)
		}
	}
}

func TestTrendConstantSeries(t *testing.T) {
	if got := Trend(points(5, 5, 5, 5, 5, 5), WellnessTrendThreshold); got != Stable {
		t.Errorf("constant series = %q, want %q", got, Stable)
	}
}

func TestTrendTooFewPoints(t *testing.T) {
	if got := Trend(nil, WellnessTrendThreshold); got != Stable {
		t.Errorf("empty series = %q, want %q", got, Stable)
	}
	if got := Trend(points(9), WellnessTrendThreshold); got != Stable {
		t.Errorf("single point = %q, want %q", got, Stable)
	}
}

func TestTrendOddLengthSplit(t *testing.T) {
	// Odd length: first half takes the extra element.
	// [1,1,1] vs [2,2]: diff = 1 > 0.5 -> improving.
	if got := Trend(points(1, 1, 1, 2, 2), WellnessTrendThreshold); got != Improving {
		t.Errorf("odd split = %q, want %q", got, Improving)
	}
}

func TestTrendThresholdBoundary(t *testing.T) {
	// Diff of exactly the threshold is stable; only strictly above improves.
	if got := Trend(points(1, 1, 1.5, 1.5), WellnessTrendThreshold); got != Stable {
		t.Errorf("diff == threshold = %q, want %q", got, Stable)
	}
	if got := Trend(points(1, 1, 1.6, 1.6), WellnessTrendThreshold); got != Improving {
		t.Errorf("diff just above threshold = %q, want %q", got, Improving)
	}
}
