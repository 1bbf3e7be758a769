package tool

import (
	"context"
	"database/sql"
	"fmt"

	"hipat/internal/adapters/storage"
	domain "hipat/internal/domain/tool"
)

// SQLiteStore implements the tool Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new tool store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const toolColumns = "id, name, icon, color, is_active, is_configured, is_custom, live_url, self_service_url"

// GetByID retrieves a Tool by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Tool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+toolColumns+" FROM tool WHERE id = ?", id)

	t, err := scanTool(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Tool{}, fmt.Errorf("tool not found: %w", err)
	}
	return t, err
}

// Save persists a Tool to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Tool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tool (id, name, icon, color, is_active, is_configured, is_custom, live_url, self_service_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, icon=excluded.icon, color=excluded.color,
		   is_active=excluded.is_active, is_configured=excluded.is_configured,
		   is_custom=excluded.is_custom,
		   live_url=excluded.live_url, self_service_url=excluded.self_service_url`,
		entity.ID, entity.Name, entity.Icon, entity.Color,
		boolToInt(entity.IsActive), boolToInt(entity.IsConfigured), boolToInt(entity.IsCustom),
		entity.LiveURL, entity.SelfServiceURL)
	return err
}

// Delete removes a Tool from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed, along with its overrides
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tool_override WHERE tool_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM tool WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns the full tool catalog.
// POST: Returns all tools ordered by name
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Tool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+toolColumns+" FROM tool ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Tool
	for rows.Next() {
		t, err := scanTool(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// GetOverride returns the mentor's override for a tool, or nil when none
// exists.
// PRE: mentorID and toolID are non-empty
// POST: Returns nil, nil when the mentor has not configured the tool
func (s *SQLiteStore) GetOverride(ctx context.Context, mentorID, toolID string) (*domain.Override, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT mentor_id, tool_id, live_url, self_service_url FROM tool_override WHERE mentor_id = ? AND tool_id = ?",
		mentorID, toolID)

	var o domain.Override
	err := row.Scan(&o.MentorID, &o.ToolID, &o.LiveURL, &o.SelfServiceURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// SaveOverride persists a per-mentor override.
// PRE: o.MentorID and o.ToolID are non-empty
// POST: Override is persisted (insert or update)
func (s *SQLiteStore) SaveOverride(ctx context.Context, o domain.Override) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tool_override (mentor_id, tool_id, live_url, self_service_url)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(mentor_id, tool_id) DO UPDATE SET
		   live_url=excluded.live_url, self_service_url=excluded.self_service_url`,
		o.MentorID, o.ToolID, o.LiveURL, o.SelfServiceURL)
	return err
}

// ListOverrides returns all of a mentor's overrides.
// PRE: mentorID is non-empty
func (s *SQLiteStore) ListOverrides(ctx context.Context, mentorID string) ([]domain.Override, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT mentor_id, tool_id, live_url, self_service_url FROM tool_override WHERE mentor_id = ?",
		mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Override
	for rows.Next() {
		var o domain.Override
		if err := rows.Scan(&o.MentorID, &o.ToolID, &o.LiveURL, &o.SelfServiceURL); err != nil {
			return nil, err
		}
		results = append(results, o)
	}
	return results, rows.Err()
}

// DeleteOverride removes a mentor's override, reverting the tool to its
// catalog URLs.
// PRE: mentorID and toolID are non-empty
func (s *SQLiteStore) DeleteOverride(ctx context.Context, mentorID, toolID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM tool_override WHERE mentor_id = ? AND tool_id = ?", mentorID, toolID)
	return err
}

// scanTool scans one row using the toolColumns order.
func scanTool(scan func(dest ...any) error) (domain.Tool, error) {
	var t domain.Tool
	var isActive, isConfigured, isCustom int
	err := scan(&t.ID, &t.Name, &t.Icon, &t.Color, &isActive, &isConfigured, &isCustom, &t.LiveURL, &t.SelfServiceURL)
	if err != nil {
		return domain.Tool{}, err
	}
	t.IsActive = isActive != 0
	t.IsConfigured = isConfigured != 0
	t.IsCustom = isCustom != 0
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
