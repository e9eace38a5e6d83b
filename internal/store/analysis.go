package store

import (
	"database/sql"
	"fmt"

	"github.com/avandermeer/wellspring/internal/model"
)

type AnalysisStore struct {
	db *sql.DB
}

func NewAnalysisStore(db *sql.DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

func scanAnalysis(scanner interface{ Scan(...any) error }) (*model.EmotionalAnalysis, error) {
	var a model.EmotionalAnalysis
	var factors, immediate, preventive string

	err := scanner.Scan(
		&a.ID, &a.OwnerID, &a.State, &a.Confidence,
		&factors, &a.Trend, &immediate, &preventive, &a.AnalyzedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON(factors, &a.Factors); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(immediate, &a.Immediate); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(preventive, &a.Preventive); err != nil {
		return nil, err
	}
	return &a, nil
}

const analysisCols = `id, owner_id, state, confidence, factors, trend, immediate, preventive, analyzed_at`

// Append adds an analysis to the owner's history. Analyses are audit
// records and never updated or deleted.
func (s *AnalysisStore) Append(a model.EmotionalAnalysis) (*model.EmotionalAnalysis, error) {
	factors, err := marshalJSON(a.Factors)
	if err != nil {
		return nil, err
	}
	immediate, err := marshalJSON(a.Immediate)
	if err != nil {
		return nil, err
	}
	preventive, err := marshalJSON(a.Preventive)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO emotional_analyses (owner_id, state, confidence, factors, trend, immediate, preventive, analyzed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.OwnerID, a.State, a.Confidence, factors, a.Trend, immediate, preventive, a.AnalyzedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("append analysis: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("analysis id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+analysisCols+` FROM emotional_analyses WHERE id = ?`, id)
	return scanAnalysis(row)
}

// ListRecent returns up to n analyses for the owner, newest first.
func (s *AnalysisStore) ListRecent(ownerID int64, n int) ([]model.EmotionalAnalysis, error) {
	rows, err := s.db.Query(
		`SELECT `+analysisCols+` FROM emotional_analyses WHERE owner_id = ? ORDER BY analyzed_at DESC, id DESC LIMIT ?`,
		ownerID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []model.EmotionalAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}
