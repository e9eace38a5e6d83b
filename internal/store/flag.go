package store

import (
	"database/sql"
	"fmt"

	"github.com/avandermeer/wellspring/internal/model"
)

type FlagStore struct {
	db *sql.DB
}

func NewFlagStore(db *sql.DB) *FlagStore {
	return &FlagStore{db: db}
}

func scanFlag(scanner interface{ Scan(...any) error }) (*model.WellnessFlag, error) {
	var f model.WellnessFlag
	var metadata string

	err := scanner.Scan(&f.ID, &f.OwnerID, &f.Type, &f.Value, &metadata, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSON(metadata, &f.Metadata); err != nil {
		return nil, err
	}
	return &f, nil
}

const flagCols = `id, owner_id, flag_type, flag_value, metadata, created_at, updated_at`

// Upsert raises or refreshes the flag for owner+type. created_at is kept
// from the first raise so flag age is observable.
func (s *FlagStore) Upsert(f model.WellnessFlag) (*model.WellnessFlag, error) {
	metadata, err := marshalJSON(f.Metadata)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(
		`INSERT INTO wellness_flags (owner_id, flag_type, flag_value, metadata)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (owner_id, flag_type) DO UPDATE SET
		   flag_value = excluded.flag_value,
		   metadata = excluded.metadata,
		   updated_at = CURRENT_TIMESTAMP`,
		f.OwnerID, f.Type, f.Value, metadata,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert flag: %w", err)
	}
	return s.Get(f.OwnerID, f.Type)
}

func (s *FlagStore) Get(ownerID int64, flagType string) (*model.WellnessFlag, error) {
	row := s.db.QueryRow(
		`SELECT `+flagCols+` FROM wellness_flags WHERE owner_id = ? AND flag_type = ?`,
		ownerID, flagType,
	)
	f, err := scanFlag(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get flag: %w", err)
	}
	return f, nil
}

// Delete clears the flag. Returns true if a row was removed.
func (s *FlagStore) Delete(ownerID int64, flagType string) (bool, error) {
	result, err := s.db.Exec(
		`DELETE FROM wellness_flags WHERE owner_id = ? AND flag_type = ?`,
		ownerID, flagType,
	)
	if err != nil {
		return false, fmt.Errorf("delete flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *FlagStore) ListByOwner(ownerID int64) ([]model.WellnessFlag, error) {
	rows, err := s.db.Query(
		`SELECT `+flagCols+` FROM wellness_flags WHERE owner_id = ? ORDER BY flag_type`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	defer rows.Close()

	var flags []model.WellnessFlag
	for rows.Next() {
		f, err := scanFlag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flag: %w", err)
		}
		flags = append(flags, *f)
	}
	return flags, rows.Err()
}
