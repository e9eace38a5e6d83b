package insight

import (
	"math"
	"time"
)

// Completion stats windows, in days.
const (
	statsLookbackDays = 30
	statsWeekDays     = 7
)

// CompletionStats rolls up an owner's advice completions for presentation.
// Averages and percentages are rounded to one decimal place so repeated
// reads of unchanged data render identically.
type CompletionStats struct {
	TotalCompletions int     `json:"total_completions"`
	WeekCompletions  int     `json:"week_completions"`
	DailyAverage     float64 `json:"daily_average"`
	BestDay          int     `json:"best_day"`
	WeekTrendPct     float64 `json:"week_trend_pct"`
}

// AggregateCompletions summarizes completion timestamps over a 30-day
// lookback: total count, count in the last 7 days, mean completions per
// active day, the busiest single day, and the week-over-week change of the
// 7-day daily average as a percentage (0 when the previous week is empty).
func AggregateCompletions(completions []time.Time, now time.Time) CompletionStats {
	today := startOfDay(now)
	windowStart := today.AddDate(0, 0, -(statsLookbackDays - 1))
	weekStart := today.AddDate(0, 0, -(statsWeekDays - 1))
	prevWeekStart := weekStart.AddDate(0, 0, -statsWeekDays)

	perDay := make(map[time.Time]int)
	var total, week, prevWeek int
	for _, c := range completions {
		day := startOfDay(c)
		if day.Before(windowStart) || day.After(today) {
			continue
		}
		total++
		perDay[day]++
		if !day.Before(weekStart) {
			week++
		} else if !day.Before(prevWeekStart) {
			prevWeek++
		}
	}

	bestDay := 0
	for _, n := range perDay {
		if n > bestDay {
			bestDay = n
		}
	}

	dailyAvg := 0.0
	if len(perDay) > 0 {
		dailyAvg = round1(float64(total) / float64(len(perDay)))
	}

	trendPct := 0.0
	prevAvg := float64(prevWeek) / statsWeekDays
	if prevAvg > 0 {
		recentAvg := float64(week) / statsWeekDays
		trendPct = round1((recentAvg - prevAvg) / prevAvg * 100)
	}

	return CompletionStats{
		TotalCompletions: total,
		WeekCompletions:  week,
		DailyAverage:     dailyAvg,
		BestDay:          bestDay,
		WeekTrendPct:     trendPct,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
