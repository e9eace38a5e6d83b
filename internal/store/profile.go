package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/avandermeer/wellspring/internal/model"
)

type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func scanProfile(scanner interface{ Scan(...any) error }) (*model.CircadianProfile, error) {
	var p model.CircadianProfile
	var peaks, lows, stressPeaks, windows string

	err := scanner.Scan(
		&p.ID, &p.OwnerID, &p.Chronotype, &p.WakeTime, &p.SleepTime,
		&peaks, &lows, &stressPeaks, &windows, &p.Confidence, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON(peaks, &p.PeakHours); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(lows, &p.LowHours); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(stressPeaks, &p.StressPeakHours); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(windows, &p.Windows); err != nil {
		return nil, err
	}
	return &p, nil
}

const profileCols = `id, owner_id, chronotype, wake_time, sleep_time, peak_hours, low_hours, stress_peak_hours, intervention_windows, confidence, updated_at`

// Upsert replaces the owner's profile. One row per owner.
func (s *ProfileStore) Upsert(p model.CircadianProfile) (*model.CircadianProfile, error) {
	peaks, err := marshalJSON(p.PeakHours)
	if err != nil {
		return nil, err
	}
	lows, err := marshalJSON(p.LowHours)
	if err != nil {
		return nil, err
	}
	stressPeaks, err := marshalJSON(p.StressPeakHours)
	if err != nil {
		return nil, err
	}
	windows, err := marshalJSON(p.Windows)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(
		`INSERT INTO circadian_profiles (owner_id, chronotype, wake_time, sleep_time, peak_hours, low_hours, stress_peak_hours, intervention_windows, confidence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (owner_id) DO UPDATE SET
		   chronotype = excluded.chronotype,
		   wake_time = excluded.wake_time,
		   sleep_time = excluded.sleep_time,
		   peak_hours = excluded.peak_hours,
		   low_hours = excluded.low_hours,
		   stress_peak_hours = excluded.stress_peak_hours,
		   intervention_windows = excluded.intervention_windows,
		   confidence = excluded.confidence,
		   updated_at = CURRENT_TIMESTAMP`,
		p.OwnerID, p.Chronotype, p.WakeTime, p.SleepTime, peaks, lows, stressPeaks, windows, p.Confidence,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return s.Get(p.OwnerID)
}

func (s *ProfileStore) Get(ownerID int64) (*model.CircadianProfile, error) {
	row := s.db.QueryRow(
		`SELECT `+profileCols+` FROM circadian_profiles WHERE owner_id = ?`,
		ownerID,
	)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// MarkStale backdates the profile's updated_at so the next dashboard or
// regeneration request rebuilds it.
func (s *ProfileStore) MarkStale(ownerID int64, asOf time.Time) error {
	_, err := s.db.Exec(
		`UPDATE circadian_profiles SET updated_at = ? WHERE owner_id = ?`,
		asOf.UTC(), ownerID,
	)
	if err != nil {
		return fmt.Errorf("mark profile stale: %w", err)
	}
	return nil
}
