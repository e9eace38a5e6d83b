package insight

import (
	"sort"
	"time"
)

// StreakCounts holds the consecutive-day completion counts for one owner.
// Best is always >= Current; zero is a valid streak.
type StreakCounts struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// Streaks computes the current and historical-best completion streaks from
// the set of calendar days with at least one completion. Duplicate dates
// (replayed completion events) collapse into the day set, so identical
// submissions cannot inflate either count.
func Streaks(completionDates []time.Time, today time.Time) StreakCounts {
	days := make(map[time.Time]struct{}, len(completionDates))
	for _, d := range completionDates {
		days[startOfDay(d)] = struct{}{}
	}
	if len(days) == 0 {
		return StreakCounts{}
	}

	// Current: walk back from today, stop at the first gap.
	current := 0
	for d := startOfDay(today); ; d = d.AddDate(0, 0, -1) {
		if _, ok := days[d]; !ok {
			break
		}
		current++
	}

	// Best: scan all days newest-first; adjacent calendar days extend a
	// run, any larger gap closes it.
	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDate(0, 0, -1).Equal(sorted[i]) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	if current > best {
		best = current
	}

	return StreakCounts{Current: current, Best: best}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
