package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hipat/internal/adapters/storage"
	domain "hipat/internal/domain/session"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements the session Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const sessionColumns = "id, mentor_id, client_id, client_name, client_email, date, start_time, end_time, status, notes, referral, created_at"

// GetByID retrieves a Session by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM session WHERE id = ?", id)

	sess, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Session{}, fmt.Errorf("session not found: %w", err)
	}
	return sess, err
}

// Save persists a Session to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session (id, mentor_id, client_id, client_name, client_email, date, start_time, end_time, status, notes, referral, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   client_id=excluded.client_id, client_name=excluded.client_name,
		   client_email=excluded.client_email, date=excluded.date,
		   start_time=excluded.start_time, end_time=excluded.end_time,
		   status=excluded.status, notes=excluded.notes, referral=excluded.referral`,
		entity.ID, entity.MentorID, entity.ClientID, entity.ClientName, entity.ClientEmail,
		entity.Date, entity.StartTime, entity.EndTime, entity.Status,
		entity.Notes, entity.Referral, entity.CreatedAt.Format(dateLayout))
	return err
}

// Delete removes a Session from the database.
// PRE: id is non-empty
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = ?", id)
	return err
}

// ListByMentorBetween returns a mentor's sessions inside a date range.
// PRE: fromDate and toDate are YYYY-MM-DD
// POST: Returns sessions ordered by date then start time
func (s *SQLiteStore) ListByMentorBetween(ctx context.Context, mentorID string, fromDate, toDate string) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM session WHERE mentor_id = ? AND date >= ? AND date <= ? ORDER BY date, start_time",
		mentorID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Session
	for rows.Next() {
		sess, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, sess)
	}
	return results, rows.Err()
}

// scanSession scans one row using the sessionColumns order.
func scanSession(scan func(dest ...any) error) (domain.Session, error) {
	var sess domain.Session
	var createdAt string
	err := scan(&sess.ID, &sess.MentorID, &sess.ClientID, &sess.ClientName, &sess.ClientEmail,
		&sess.Date, &sess.StartTime, &sess.EndTime, &sess.Status,
		&sess.Notes, &sess.Referral, &createdAt)
	if err != nil {
		return domain.Session{}, err
	}
	sess.CreatedAt, _ = time.Parse(dateLayout, createdAt)
	return sess, nil
}
