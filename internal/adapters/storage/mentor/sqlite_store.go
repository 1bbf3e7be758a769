package mentor

import (
	"context"
	"database/sql"
	"fmt"

	"hipat/internal/adapters/storage"
	domain "hipat/internal/domain/mentor"
)

// SQLiteStore implements the mentor Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new mentor store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const mentorColumns = "id, name, email, business_name, theme"

// GetByID retrieves a Mentor by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Mentor, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+mentorColumns+" FROM mentor WHERE id = ?", id)
	return scanMentor(row)
}

// GetByEmail retrieves a Mentor by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Mentor, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+mentorColumns+" FROM mentor WHERE email = ?", email)
	return scanMentor(row)
}

// Save persists a Mentor to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update); created_at is set on insert
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Mentor) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mentor (id, name, email, business_name, theme, created_at)
		 VALUES (?, ?, ?, ?, ?, datetime('now'))
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email,
		   business_name=excluded.business_name, theme=excluded.theme`,
		entity.ID, entity.Name, entity.Email, entity.BusinessName, entity.Theme)
	return err
}

func scanMentor(row *sql.Row) (domain.Mentor, error) {
	var m domain.Mentor
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.BusinessName, &m.Theme)
	if err == sql.ErrNoRows {
		return domain.Mentor{}, fmt.Errorf("mentor not found: %w", err)
	}
	return m, err
}
