package storage

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// A migration moves the schema forward one version inside a transaction.
type migration struct {
	version int
	name    string
	apply   func(tx *sql.Tx) error
}

// migrations is the ordered chain. Never edit an entry after it has
// shipped; append a new one instead.
var migrations = []migration{
	{version: 1, name: "baseline", apply: applyBaseline},
}

// LatestSchemaVersion returns the version the chain migrates to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the database's current schema version, 0 when the
// database has never been migrated.
// PRE: db is a valid connection
// POST: Returns the recorded version without modifying the database
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check schema_version table: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}

	var version int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB brings the database schema to the latest version.
// A file-backed database is copied aside before any migration runs.
// PRE: db is a valid connection; dbPath is the database file or ":memory:"
// POST: Schema is at LatestSchemaVersion; each applied step recorded
func MigrateDB(db *sql.DB, dbPath string) error {
	if err := InitDB(db); err != nil {
		return err
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current >= LatestSchemaVersion() {
		return nil
	}

	if err := backupBeforeMigration(dbPath, current); err != nil {
		return err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}

		slog.Info("migration_applied", "version", m.version, "name", m.name)
	}

	return nil
}

// applyBaseline is migration 1. The tables themselves come from InitDB with
// IF NOT EXISTS, so upgrading a pre-migration database is a no-op here.
func applyBaseline(tx *sql.Tx) error {
	return nil
}

// backupBeforeMigration copies a file-backed database aside so a failed
// migration can be rolled back by hand.
func backupBeforeMigration(dbPath string, fromVersion int) error {
	if dbPath == "" || dbPath == ":memory:" {
		return nil
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil // nothing to back up yet
	}

	backupPath := fmt.Sprintf("%s.v%d.bak", dbPath, fromVersion)
	src, err := os.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	slog.Info("db_backup_created", "path", backupPath, "from_version", fromVersion)
	return nil
}
