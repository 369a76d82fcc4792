package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migration is one forward-only schema step.
type migration struct {
	version     int
	description string
	stmts       []string
}

// migrations is the ordered schema history of the activity database.
var migrations = []migration{
	{
		version:     1,
		description: "activity log",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS audit_event (
				id TEXT PRIMARY KEY,
				timestamp TEXT NOT NULL,
				category TEXT NOT NULL,
				action TEXT NOT NULL,
				outcome TEXT NOT NULL,
				leader_id INTEGER NOT NULL DEFAULT 0,
				leader_name TEXT NOT NULL DEFAULT '',
				target_id INTEGER NOT NULL DEFAULT 0,
				detail TEXT NOT NULL DEFAULT '',
				ip_address TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX IF NOT EXISTS idx_audit_event_timestamp ON audit_event(timestamp)`,
		},
	},
	{
		version:     2,
		description: "activity filters",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_audit_event_category ON audit_event(category, timestamp)`,
			`CREATE INDEX IF NOT EXISTS idx_audit_event_leader ON audit_event(leader_id, timestamp)`,
		},
	},
}

// LatestSchemaVersion returns the version MigrateDB brings a database to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion reads the applied schema version from PRAGMA user_version.
// PRE: db is a valid database connection
// POST: Returns 0 for a fresh database
func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// MigrateDB applies every pending migration in order, each in its own transaction.
// PRE: db is a valid database connection
// POST: SchemaVersion(db) == LatestSchemaVersion()
// INVARIANT: applied migrations are never re-run
func MigrateDB(db *sql.DB, dbPath string) error {
	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: begin: %w", m.version, err)
		}
		for _, stmt := range m.stmts {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
			}
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: set version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", m.version, err)
		}
		slog.Info("schema_migrated", "db", dbPath, "version", m.version, "description", m.description)
	}
	return nil
}
