package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS mentor (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		business_name TEXT NOT NULL DEFAULT '',
		theme TEXT NOT NULL DEFAULT 'light',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS client (
		id TEXT PRIMARY KEY,
		mentor_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (mentor_id) REFERENCES mentor(id)
	);

	CREATE TABLE IF NOT EXISTS tool (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		icon TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1,
		is_configured INTEGER NOT NULL DEFAULT 0,
		is_custom INTEGER NOT NULL DEFAULT 0,
		live_url TEXT NOT NULL DEFAULT '',
		self_service_url TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS tool_override (
		mentor_id TEXT NOT NULL,
		tool_id TEXT NOT NULL,
		live_url TEXT NOT NULL DEFAULT '',
		self_service_url TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (mentor_id, tool_id),
		FOREIGN KEY (mentor_id) REFERENCES mentor(id),
		FOREIGN KEY (tool_id) REFERENCES tool(id)
	);

	CREATE TABLE IF NOT EXISTS submission (
		id TEXT PRIMARY KEY,
		tool_id TEXT NOT NULL,
		mentor_id TEXT NOT NULL,
		client_name TEXT NOT NULL DEFAULT '',
		client_email TEXT NOT NULL,
		client_phone TEXT NOT NULL DEFAULT '',
		results TEXT NOT NULL DEFAULT '{}',
		status TEXT NOT NULL,
		client_id TEXT NOT NULL DEFAULT '',
		submitted_at TEXT NOT NULL,
		invited_at TEXT NOT NULL DEFAULT '',
		signed_up_at TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (tool_id) REFERENCES tool(id),
		FOREIGN KEY (mentor_id) REFERENCES mentor(id)
	);

	CREATE TABLE IF NOT EXISTS session (
		id TEXT PRIMARY KEY,
		mentor_id TEXT NOT NULL,
		client_id TEXT NOT NULL DEFAULT '',
		client_name TEXT NOT NULL,
		client_email TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		referral TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (mentor_id) REFERENCES mentor(id)
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_submission_mentor ON submission(mentor_id, submitted_at);
	CREATE INDEX IF NOT EXISTS idx_client_mentor ON client(mentor_id, status);
	CREATE INDEX IF NOT EXISTS idx_session_mentor_date ON session(mentor_id, date);
	CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox(status, created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
