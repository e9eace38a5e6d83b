package store

import (
	"database/sql"
	"fmt"

	"github.com/avandermeer/wellspring/internal/model"
)

type StreakStore struct {
	db *sql.DB
}

func NewStreakStore(db *sql.DB) *StreakStore {
	return &StreakStore{db: db}
}

func scanStreak(scanner interface{ Scan(...any) error }) (*model.Streak, error) {
	var st model.Streak
	var lastActivity string

	err := scanner.Scan(
		&st.ID, &st.OwnerID, &st.Type, &st.Current, &st.Best,
		&lastActivity, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	st.LastActivity, err = parseDate(lastActivity)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

const streakCols = `id, owner_id, streak_type, current_count, best_count, last_activity, created_at, updated_at`

// Upsert writes the recomputed streak for owner+type. Counts are derived
// from completion history, so replaying the same computation lands on the
// same row values.
func (s *StreakStore) Upsert(st model.Streak) (*model.Streak, error) {
	_, err := s.db.Exec(
		`INSERT INTO streaks (owner_id, streak_type, current_count, best_count, last_activity)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (owner_id, streak_type) DO UPDATE SET
		   current_count = excluded.current_count,
		   best_count = excluded.best_count,
		   last_activity = excluded.last_activity,
		   updated_at = CURRENT_TIMESTAMP`,
		st.OwnerID, st.Type, st.Current, st.Best, formatDate(st.LastActivity),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert streak: %w", err)
	}
	return s.Get(st.OwnerID, st.Type)
}

func (s *StreakStore) Get(ownerID int64, streakType string) (*model.Streak, error) {
	row := s.db.QueryRow(
		`SELECT `+streakCols+` FROM streaks WHERE owner_id = ? AND streak_type = ?`,
		ownerID, streakType,
	)
	st, err := scanStreak(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}
	return st, nil
}

func (s *StreakStore) ListByOwner(ownerID int64) ([]model.Streak, error) {
	rows, err := s.db.Query(
		`SELECT `+streakCols+` FROM streaks WHERE owner_id = ? ORDER BY streak_type`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list streaks: %w", err)
	}
	defer rows.Close()

	var streaks []model.Streak
	for rows.Next() {
		st, err := scanStreak(rows)
		if err != nil {
			return nil, fmt.Errorf("scan streak: %w", err)
		}
		streaks = append(streaks, *st)
	}
	return streaks, rows.Err()
}
