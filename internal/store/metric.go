package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avandermeer/wellspring/internal/model"
)

type MetricStore struct {
	db *sql.DB
}

func NewMetricStore(db *sql.DB) *MetricStore {
	return &MetricStore{db: db}
}

func scanMetric(scanner interface{ Scan(...any) error }) (*model.DailyMetric, error) {
	var m model.DailyMetric
	var date string
	var bedtime sql.NullInt64

	err := scanner.Scan(
		&m.ID, &m.OwnerID, &date, &m.SleepHours, &m.Steps,
		&m.Mood, &m.Stress, &m.Energy, &m.HeartRate, &bedtime,
		&m.Source, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Date, err = parseDate(date)
	if err != nil {
		return nil, err
	}
	if bedtime.Valid {
		v := int(bedtime.Int64)
		m.BedtimeMinutes = &v
	}
	return &m, nil
}

const metricCols = `id, owner_id, date, sleep_hours, steps, mood, stress, energy, heart_rate, bedtime_minutes, source, created_at, updated_at`

// Upsert inserts the day's metrics or, when a row for owner+date already
// exists, overwrites its values. Safe to replay.
func (s *MetricStore) Upsert(m model.DailyMetric) (*model.DailyMetric, error) {
	var bedtime sql.NullInt64
	if m.BedtimeMinutes != nil {
		bedtime = sql.NullInt64{Int64: int64(*m.BedtimeMinutes), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO daily_metrics (owner_id, date, sleep_hours, steps, mood, stress, energy, heart_rate, bedtime_minutes, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (owner_id, date) DO UPDATE SET
		   sleep_hours = excluded.sleep_hours,
		   steps = excluded.steps,
		   mood = excluded.mood,
		   stress = excluded.stress,
		   energy = excluded.energy,
		   heart_rate = excluded.heart_rate,
		   bedtime_minutes = excluded.bedtime_minutes,
		   source = excluded.source,
		   updated_at = CURRENT_TIMESTAMP`,
		m.OwnerID, formatDate(m.Date), m.SleepHours, m.Steps, m.Mood, m.Stress, m.Energy, m.HeartRate, bedtime, m.Source,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert metric: %w", err)
	}
	return s.GetByDate(m.OwnerID, m.Date)
}

func (s *MetricStore) GetByDate(ownerID int64, date time.Time) (*model.DailyMetric, error) {
	row := s.db.QueryRow(
		`SELECT `+metricCols+` FROM daily_metrics WHERE owner_id = ? AND date = ?`,
		ownerID, formatDate(date),
	)
	m, err := scanMetric(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get metric: %w", err)
	}
	return m, nil
}

// ListRecent returns up to n metrics for the owner, newest first.
func (s *MetricStore) ListRecent(ownerID int64, n int) ([]model.DailyMetric, error) {
	rows, err := s.db.Query(
		`SELECT `+metricCols+` FROM daily_metrics WHERE owner_id = ? ORDER BY date DESC LIMIT ?`,
		ownerID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent metrics: %w", err)
	}
	defer rows.Close()
	return collectMetrics(rows)
}

// ListRange returns metrics with from <= date <= to, newest first.
func (s *MetricStore) ListRange(ownerID int64, from, to time.Time) ([]model.DailyMetric, error) {
	rows, err := s.db.Query(
		`SELECT `+metricCols+` FROM daily_metrics WHERE owner_id = ? AND date >= ? AND date <= ? ORDER BY date DESC`,
		ownerID, formatDate(from), formatDate(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list metrics by range: %w", err)
	}
	defer rows.Close()
	return collectMetrics(rows)
}

func collectMetrics(rows *sql.Rows) ([]model.DailyMetric, error) {
	var metrics []model.DailyMetric
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		metrics = append(metrics, *m)
	}
	return metrics, rows.Err()
}
