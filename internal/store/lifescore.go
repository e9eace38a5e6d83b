package store

import (
	"database/sql"
	"fmt"

	"github.com/avandermeer/wellspring/internal/model"
)

type LifeScoreStore struct {
	db *sql.DB
}

func NewLifeScoreStore(db *sql.DB) *LifeScoreStore {
	return &LifeScoreStore{db: db}
}

func scanLifeScore(scanner interface{ Scan(...any) error }) (*model.LifeScore, error) {
	var s model.LifeScore
	var date string

	err := scanner.Scan(
		&s.ID, &s.OwnerID, &date, &s.StressScore, &s.EnergyScore,
		&s.SleepScore, &s.Overall, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Date, err = parseDate(date)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const lifeScoreCols = `id, owner_id, date, stress_score, energy_score, sleep_score, overall, created_at, updated_at`

// Upsert stores the derived score for owner+date, overwriting any previous
// derivation for that day.
func (s *LifeScoreStore) Upsert(score model.LifeScore) (*model.LifeScore, error) {
	_, err := s.db.Exec(
		`INSERT INTO life_scores (owner_id, date, stress_score, energy_score, sleep_score, overall)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (owner_id, date) DO UPDATE SET
		   stress_score = excluded.stress_score,
		   energy_score = excluded.energy_score,
		   sleep_score = excluded.sleep_score,
		   overall = excluded.overall,
		   updated_at = CURRENT_TIMESTAMP`,
		score.OwnerID, formatDate(score.Date), score.StressScore, score.EnergyScore, score.SleepScore, score.Overall,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert life score: %w", err)
	}

	row := s.db.QueryRow(
		`SELECT `+lifeScoreCols+` FROM life_scores WHERE owner_id = ? AND date = ?`,
		score.OwnerID, formatDate(score.Date),
	)
	return scanLifeScore(row)
}

// Latest returns the owner's most recent score, or nil when none exists.
func (s *LifeScoreStore) Latest(ownerID int64) (*model.LifeScore, error) {
	row := s.db.QueryRow(
		`SELECT `+lifeScoreCols+` FROM life_scores WHERE owner_id = ? ORDER BY date DESC LIMIT 1`,
		ownerID,
	)
	score, err := scanLifeScore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest life score: %w", err)
	}
	return score, nil
}

// ListRecent returns up to n scores for the owner, newest first.
func (s *LifeScoreStore) ListRecent(ownerID int64, n int) ([]model.LifeScore, error) {
	rows, err := s.db.Query(
		`SELECT `+lifeScoreCols+` FROM life_scores WHERE owner_id = ? ORDER BY date DESC LIMIT ?`,
		ownerID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("list life scores: %w", err)
	}
	defer rows.Close()

	var scores []model.LifeScore
	for rows.Next() {
		sc, err := scanLifeScore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan life score: %w", err)
		}
		scores = append(scores, *sc)
	}
	return scores, rows.Err()
}
