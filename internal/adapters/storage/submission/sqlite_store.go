package submission

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hipat/internal/adapters/storage"
	domain "hipat/internal/domain/submission"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements the submission Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new submission store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const submissionColumns = "id, tool_id, mentor_id, client_name, client_email, client_phone, results, status, client_id, submitted_at, invited_at, signed_up_at"

// GetByID retrieves a Submission by its ID.
// PRE: id is non-empty
// POST: Returns domain.ErrNotFound when no row matches
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+submissionColumns+" FROM submission WHERE id = ?", id)

	sub, err := scanSubmission(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Submission{}, domain.ErrNotFound
	}
	return sub, err
}

// Save persists a Submission to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Submission) error {
	results, err := json.Marshal(entity.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal submission results: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submission (id, tool_id, mentor_id, client_name, client_email, client_phone, results, status, client_id, submitted_at, invited_at, signed_up_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   status=excluded.status, client_id=excluded.client_id,
		   invited_at=excluded.invited_at, signed_up_at=excluded.signed_up_at`,
		entity.ID, entity.ToolID, entity.MentorID,
		entity.ClientData.Name, entity.ClientData.Email, entity.ClientData.Phone,
		string(results), entity.Status, entity.ClientID,
		entity.SubmittedAt.Format(dateLayout),
		formatNullableTime(entity.InvitedAt),
		formatNullableTime(entity.SignedUpAt))
	return err
}

// Delete removes a Submission from the database.
// PRE: id is non-empty
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM submission WHERE id = ?", id)
	return err
}

// ListByMentor returns all of a mentor's submissions, newest first.
// PRE: mentorID is non-empty
func (s *SQLiteStore) ListByMentor(ctx context.Context, mentorID string) ([]domain.Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+submissionColumns+" FROM submission WHERE mentor_id = ? ORDER BY submitted_at DESC",
		mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, sub)
	}
	return results, rows.Err()
}

// CountByStatus returns submission counts per status for one mentor.
// PRE: mentorID is non-empty
func (s *SQLiteStore) CountByStatus(ctx context.Context, mentorID string) (map[string]int, error) {
	return s.countGrouped(ctx, "status", mentorID)
}

// CountByTool returns submission counts per tool for one mentor.
// PRE: mentorID is non-empty
func (s *SQLiteStore) CountByTool(ctx context.Context, mentorID string) (map[string]int, error) {
	return s.countGrouped(ctx, "tool_id", mentorID)
}

func (s *SQLiteStore) countGrouped(ctx context.Context, column, mentorID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s, COUNT(*) FROM submission WHERE mentor_id = ? GROUP BY %s", column, column),
		mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

// scanSubmission scans one row using the submissionColumns order.
func scanSubmission(scan func(dest ...any) error) (domain.Submission, error) {
	var sub domain.Submission
	var results, submittedAt, invitedAt, signedUpAt string
	err := scan(&sub.ID, &sub.ToolID, &sub.MentorID,
		&sub.ClientData.Name, &sub.ClientData.Email, &sub.ClientData.Phone,
		&results, &sub.Status, &sub.ClientID,
		&submittedAt, &invitedAt, &signedUpAt)
	if err != nil {
		return domain.Submission{}, err
	}

	if results != "" && results != "null" {
		if err := json.Unmarshal([]byte(results), &sub.Results); err != nil {
			return domain.Submission{}, fmt.Errorf("failed to unmarshal submission results: %w", err)
		}
	}
	sub.SubmittedAt, _ = time.Parse(dateLayout, submittedAt)
	sub.InvitedAt = parseNullableTime(invitedAt)
	sub.SignedUpAt = parseNullableTime(signedUpAt)
	return sub, nil
}

// formatNullableTime renders a zero time as the empty string.
func formatNullableTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// parseNullableTime reads an empty string back as the zero time.
func parseNullableTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(dateLayout, s)
	return t
}
