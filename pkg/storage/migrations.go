package storage

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	// Migration 1: Initial schema
	`CREATE TABLE IF NOT EXISTS runs (
		id                TEXT PRIMARY KEY,
		state             TEXT NOT NULL CHECK(state IN ('done', 'failed')),
		started_at        DATETIME NOT NULL,
		finished_at       DATETIME NOT NULL,
		price_drops       INTEGER NOT NULL DEFAULT 0,
		negative_batch    INTEGER NOT NULL DEFAULT 0,
		negative_count    INTEGER NOT NULL DEFAULT 0,
		parse_warnings    INTEGER NOT NULL DEFAULT 0,
		dispatch_attempts INTEGER NOT NULL DEFAULT 0,
		dispatch_failures INTEGER NOT NULL DEFAULT 0,
		error             TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	CREATE TABLE IF NOT EXISTS price_drop_events (
		id           TEXT PRIMARY KEY,
		run_id       TEXT NOT NULL REFERENCES runs(id),
		product_key  TEXT NOT NULL,
		old_price    REAL NOT NULL,
		new_price    REAL NOT NULL,
		drop_percent REAL NOT NULL,
		url          TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_events_run ON price_drop_events(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_product ON price_drop_events(product_key);

	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
}

// runMigrations applies pending schema migrations.
func runMigrations(db *sql.DB) error {
	// Ensure migration tracking table exists
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("check migration version: %w", err)
	}

	for i := currentVersion; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("run migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
