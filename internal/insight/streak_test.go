package insight

import (
	"testing"
	"time"
)

var streakToday = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return streakToday.AddDate(0, 0, offset)
}

func TestStreakThreeConsecutiveDays(t *testing.T) {
	got := Streaks([]time.Time{day(0), day(-1), day(-2)}, streakToday)
	if got.Current != 3 {
		t.Errorf("current = %d, want 3", got.Current)
	}
	if got.Best != 3 {
		t.Errorf("best = %d, want 3", got.Best)
	}
}

func TestStreakGapYesterday(t *testing.T) {
	got := Streaks([]time.Time{day(0), day(-2)}, streakToday)
	if got.Current != 1 {
		t.Errorf("current = %d, want 1", got.Current)
	}
	if got.Best != 1 {
		t.Errorf("best = %d, want 1", got.Best)
	}
}

func TestStreakNoCompletions(t *testing.T) {
	got := Streaks(nil, streakToday)
	if got.Current != 0 || got.Best != 0 {
		t.Errorf("got %+v, want zero streaks", got)
	}
}

func TestStreakBestInHistory(t *testing.T) {
	// A five-day run two weeks ago beats the current two-day run.
	dates := []time.Time{day(0), day(-1)}
	for i := -14; i > -19; i-- {
		dates = append(dates, day(i))
	}
	got := Streaks(dates, streakToday)
	if got.Current != 2 {
		t.Errorf("current = %d, want 2", got.Current)
	}
	if got.Best != 5 {
		t.Errorf("best = %d, want 5", got.Best)
	}
}

func TestStreakTodayMissing(t *testing.T) {
	got := Streaks([]time.Time{day(-1), day(-2)}, streakToday)
	if got.Current != 0 {
		t.Errorf("current = %d, want 0", got.Current)
	}
	if got.Best != 2 {
		t.Errorf("best = %d, want 2", got.Best)
	}
}

func TestStreakDuplicateDatesCollapse(t *testing.T) {
	// Replayed completion events on the same day must not double count.
	dates := []time.Time{day(0), day(0), day(0).Add(2 * time.Hour), day(-1)}
	got := Streaks(dates, streakToday)
	if got.Current != 2 {
		t.Errorf("current = %d, want 2", got.Current)
	}
	if got.Best != 2 {
		t.Errorf("best = %d, want 2", got.Best)
	}
}

func TestStreakBestNeverBelowCurrent(t *testing.T) {
	for _, dates := range [][]time.Time{
		{day(0)},
		{day(0), day(-1), day(-3)},
		{day(0), day(-1), day(-2), day(-4), day(-5)},
	} {
		got := Streaks(dates, streakToday)
		if got.Best < got.Current {
			t.Errorf("Streaks(%v): best %d < current %d", dates, got.Best, got.Current)
		}
	}
}
