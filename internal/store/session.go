package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avandermeer/wellspring/internal/model"
)

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func scanSession(scanner interface{ Scan(...any) error }) (*model.AdviceSession, error) {
	var s model.AdviceSession
	var action sql.NullString
	var respondedAt, completedAt sql.NullTime
	var rating sql.NullInt64

	err := scanner.Scan(&s.ID, &s.OwnerID, &s.CreatedAt, &action, &respondedAt, &rating, &completedAt)
	if err != nil {
		return nil, err
	}

	if action.Valid {
		resp := &model.SessionResponse{
			Action:      action.String,
			RespondedAt: respondedAt.Time,
		}
		if rating.Valid {
			v := int(rating.Int64)
			resp.Rating = &v
		}
		if completedAt.Valid {
			t := completedAt.Time
			resp.CompletedAt = &t
		}
		s.Response = resp
	}
	return &s, nil
}

const sessionCols = `id, owner_id, created_at, response_action, responded_at, rating, completed_at`

// Create opens a new advice session for the owner.
func (s *SessionStore) Create(ownerID int64) (*model.AdviceSession, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO advice_sessions (id, owner_id) VALUES (?, ?)`,
		id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s.GetByID(ownerID, id)
}

func (s *SessionStore) GetByID(ownerID int64, id string) (*model.AdviceSession, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionCols+` FROM advice_sessions WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// SetResponse records the user's reaction to a session. The response is
// written at most once: if one already exists the call is a no-op and
// applied is false. This makes replayed submissions idempotent.
func (s *SessionStore) SetResponse(ownerID int64, id string, resp model.SessionResponse) (session *model.AdviceSession, applied bool, err error) {
	var rating sql.NullInt64
	if resp.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*resp.Rating), Valid: true}
	}
	var completedAt sql.NullTime
	if resp.CompletedAt != nil {
		completedAt = sql.NullTime{Time: resp.CompletedAt.UTC(), Valid: true}
	}

	result, err := s.db.Exec(
		`UPDATE advice_sessions
		 SET response_action = ?, responded_at = ?, rating = ?, completed_at = ?
		 WHERE id = ? AND owner_id = ? AND response_action IS NULL`,
		resp.Action, resp.RespondedAt.UTC(), rating, completedAt, id, ownerID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("set response: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	session, err = s.GetByID(ownerID, id)
	if err != nil {
		return nil, false, err
	}
	return session, affected > 0, nil
}

// ListRespondedSince returns sessions the owner responded to at or after
// the given time, newest first.
func (s *SessionStore) ListRespondedSince(ownerID int64, since time.Time) ([]model.AdviceSession, error) {
	rows, err := s.db.Query(
		`SELECT `+sessionCols+` FROM advice_sessions
		 WHERE owner_id = ? AND responded_at IS NOT NULL AND responded_at >= ?
		 ORDER BY responded_at DESC`,
		ownerID, since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list responded sessions: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

// CompletionTimes returns the timestamps of every completed session for the
// owner, preferring the completion time over the response time.
func (s *SessionStore) CompletionTimes(ownerID int64) ([]time.Time, error) {
	rows, err := s.db.Query(
		`SELECT completed_at, responded_at FROM advice_sessions
		 WHERE owner_id = ? AND response_action = ?`,
		ownerID, model.ActionCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("list completion times: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var completed, responded sql.NullTime
		if err := rows.Scan(&completed, &responded); err != nil {
			return nil, fmt.Errorf("scan completion time: %w", err)
		}
		switch {
		case completed.Valid:
			times = append(times, completed.Time)
		case responded.Valid:
			times = append(times, responded.Time)
		}
	}
	return times, rows.Err()
}

func collectSessions(rows *sql.Rows) ([]model.AdviceSession, error) {
	var sessions []model.AdviceSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}
