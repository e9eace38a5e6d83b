package insight

import (
	"testing"
	"time"
)

var statsNow = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

func at(daysAgo int, hour int) time.Time {
	return time.Date(2026, 3, 20, hour, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo)
}

func TestAggregateOnePerDayForAWeek(t *testing.T) {
	var completions []time.Time
	for i := 0; i < 7; i++ {
		completions = append(completions, at(i, 9))
	}

	got := AggregateCompletions(completions, statsNow)
	if got.WeekCompletions != 7 {
		t.Errorf("week completions = %d, want 7", got.WeekCompletions)
	}
	if got.DailyAverage != 1.0 {
		t.Errorf("daily average = %v, want 1.0", got.DailyAverage)
	}
	if got.TotalCompletions != 7 {
		t.Errorf("total = %d, want 7", got.TotalCompletions)
	}
	if got.BestDay != 1 {
		t.Errorf("best day = %d, want 1", got.BestDay)
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := AggregateCompletions(nil, statsNow)
	if got.TotalCompletions != 0 || got.WeekCompletions != 0 {
		t.Errorf("counts = %+v, want zeroes", got)
	}
	if got.DailyAverage != 0 {
		t.Errorf("daily average = %v, want 0", got.DailyAverage)
	}
	if got.WeekTrendPct != 0 {
		t.Errorf("trend = %v, want 0 with no data", got.WeekTrendPct)
	}
}

func TestAggregateBestDay(t *testing.T) {
	completions := []time.Time{
		at(1, 8), at(1, 12), at(1, 18),
		at(3, 9),
	}
	got := AggregateCompletions(completions, statsNow)
	if got.BestDay != 3 {
		t.Errorf("best day = %d, want 3", got.BestDay)
	}
}

func TestAggregateWeekTrend(t *testing.T) {
	// 14 completions last week, 7 this week: (1.0 - 2.0) / 2.0 = -50%.
	var completions []time.Time
	for i := 0; i < 7; i++ {
		completions = append(completions, at(i, 9))
		completions = append(completions, at(i+7, 9), at(i+7, 18))
	}
	got := AggregateCompletions(completions, statsNow)
	if got.WeekTrendPct != -50.0 {
		t.Errorf("week trend = %v, want -50.0", got.WeekTrendPct)
	}
}

func TestAggregateTrendZeroWhenNoPreviousWeek(t *testing.T) {
	got := AggregateCompletions([]time.Time{at(0, 9), at(1, 9)}, statsNow)
	if got.WeekTrendPct != 0 {
		t.Errorf("week trend = %v, want 0 when previous week empty", got.WeekTrendPct)
	}
}

func TestAggregateIgnoresOutsideWindow(t *testing.T) {
	completions := []time.Time{
		at(0, 9),
		at(45, 9),                  // before the 30-day window
		statsNow.AddDate(0, 0, 2),  // future
	}
	got := AggregateCompletions(completions, statsNow)
	if got.TotalCompletions != 1 {
		t.Errorf("total = %d, want 1", got.TotalCompletions)
	}
}

func TestRoundingOneDecimal(t *testing.T) {
	// 2 completions on one day, 1 on another: avg 1.5 over active days.
	completions := []time.Time{at(1, 8), at(1, 9), at(2, 10)}
	got := AggregateCompletions(completions, statsNow)
	if got.DailyAverage != 1.5 {
		t.Errorf("daily average = %v, want 1.5", got.DailyAverage)
	}
}
