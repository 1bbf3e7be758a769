package client

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hipat/internal/adapters/storage"
	domain "hipat/internal/domain/client"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements the client Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new client store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const clientColumns = "id, mentor_id, name, email, phone, source, status, created_at"

// GetByID retrieves a Client by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Client, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM client WHERE id = ?", id)

	c, err := scanClient(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Client{}, fmt.Errorf("client not found: %w", err)
	}
	return c, err
}

// Save persists a Client to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Client) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO client (id, mentor_id, name, email, phone, source, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email, phone=excluded.phone,
		   source=excluded.source, status=excluded.status`,
		entity.ID, entity.MentorID, entity.Name, entity.Email, entity.Phone,
		entity.Source, entity.Status, entity.CreatedAt.Format(dateLayout))
	return err
}

// Delete removes a Client from the database.
// PRE: id is non-empty
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM client WHERE id = ?", id)
	return err
}

// ListByMentor returns a mentor's roster, optionally filtered by status.
// PRE: mentorID is non-empty
// POST: Returns clients ordered by name
func (s *SQLiteStore) ListByMentor(ctx context.Context, mentorID string, filter ListFilter) ([]domain.Client, error) {
	query := "SELECT " + clientColumns + " FROM client WHERE mentor_id = ?"
	args := []any{mentorID}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		query += " AND (name LIKE ? OR email LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY name"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Client
	for rows.Next() {
		c, err := scanClient(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// CountByStatus returns client counts per status for one mentor.
// PRE: mentorID is non-empty
func (s *SQLiteStore) CountByStatus(ctx context.Context, mentorID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM client WHERE mentor_id = ? GROUP BY status", mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// scanClient scans one row using the clientColumns order.
func scanClient(scan func(dest ...any) error) (domain.Client, error) {
	var c domain.Client
	var createdAt string
	err := scan(&c.ID, &c.MentorID, &c.Name, &c.Email, &c.Phone, &c.Source, &c.Status, &createdAt)
	if err != nil {
		return domain.Client{}, err
	}
	c.CreatedAt, _ = time.Parse(dateLayout, createdAt)
	return c, nil
}
