package store

import (
	"testing"
	"time"

	"github.com/avandermeer/wellspring/internal/model"
)

func TestMetricUpsertInsertsAndOverwrites(t *testing.T) {
	ms := NewMetricStore(setupTestDB(t))
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	m, err := ms.Upsert(model.DailyMetric{
		OwnerID: 1, Date: date, SleepHours: 7.5, Steps: 8200,
		Mood: 4, Stress: 2, Energy: 4, HeartRate: 62, Source: "manual",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if m.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if m.SleepHours != 7.5 {
		t.Errorf("sleep_hours = %v, want 7.5", m.SleepHours)
	}

	// Same owner+date replaces values, keeps the row.
	m2, err := ms.Upsert(model.DailyMetric{
		OwnerID: 1, Date: date, SleepHours: 6, Steps: 4000,
		Mood: 2, Stress: 4, Energy: 2, HeartRate: 70, Source: "device",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if m2.ID != m.ID {
		t.Errorf("id changed on upsert: %d -> %d", m.ID, m2.ID)
	}
	if m2.Steps != 4000 || m2.Source != "device" {
		t.Errorf("values not overwritten: steps=%d source=%q", m2.Steps, m2.Source)
	}

	list, err := ms.ListRecent(1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 row after replay, got %d", len(list))
	}
}

func TestMetricBedtimeNullable(t *testing.T) {
	ms := NewMetricStore(setupTestDB(t))
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	m, err := ms.Upsert(model.DailyMetric{OwnerID: 1, Date: date, Mood: 3, Stress: 3, Energy: 3, Source: "manual"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if m.BedtimeMinutes != nil {
		t.Errorf("bedtime = %v, want nil", *m.BedtimeMinutes)
	}

	bedtime := 23 * 60
	m, err = ms.Upsert(model.DailyMetric{OwnerID: 1, Date: date, Mood: 3, Stress: 3, Energy: 3, Source: "manual", BedtimeMinutes: &bedtime})
	if err != nil {
		t.Fatalf("upsert with bedtime: %v", err)
	}
	if m.BedtimeMinutes == nil || *m.BedtimeMinutes != bedtime {
		t.Errorf("bedtime not stored: %v", m.BedtimeMinutes)
	}
}

func TestMetricListRangeAndOrder(t *testing.T) {
	ms := NewMetricStore(setupTestDB(t))
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := ms.Upsert(model.DailyMetric{
			OwnerID: 1, Date: base.AddDate(0, 0, i),
			Mood: 3, Stress: 3, Energy: 3, Source: "manual",
		})
		if err != nil {
			t.Fatalf("upsert day %d: %v", i, err)
		}
	}
	// Another owner's data must not leak.
	if _, err := ms.Upsert(model.DailyMetric{OwnerID: 2, Date: base, Mood: 3, Stress: 3, Energy: 3, Source: "manual"}); err != nil {
		t.Fatalf("upsert other owner: %v", err)
	}

	list, err := ms.ListRange(1, base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if !list[i].Date.Before(list[i-1].Date) {
			t.Errorf("not newest first: %v before %v", list[i-1].Date, list[i].Date)
		}
	}

	recent, err := ms.ListRecent(1, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 2 || !recent[0].Date.Equal(base.AddDate(0, 0, 4)) {
		t.Errorf("recent = %d rows, first %v", len(recent), recent[0].Date)
	}
}

func TestMetricGetByDateMissing(t *testing.T) {
	ms := NewMetricStore(setupTestDB(t))
	m, err := ms.GetByDate(1, time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil for missing row, got %+v", m)
	}
}
