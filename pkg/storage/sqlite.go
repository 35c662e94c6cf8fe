package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/adi1913/competitor-tracker/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLite implements the Storage interface using an SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates an SQLite database at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) RecordRun(ctx context.Context, summary *model.RunSummary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}

	negative := 0
	if summary.NegativeBatch {
		negative = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, state, started_at, finished_at, price_drops, negative_batch,
		                   negative_count, parse_warnings, dispatch_attempts, dispatch_failures, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.ID, string(summary.State), summary.StartedAt, summary.FinishedAt,
		summary.PriceDrops, negative, summary.NegativeCount, summary.ParseWarnings,
		summary.DispatchAttempts, summary.DispatchFailures, summary.Error,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *SQLite) RecordPriceDrops(ctx context.Context, runID string, events []model.PriceDropEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin events tx: %w", err)
	}
	for _, e := range events {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO price_drop_events (id, run_id, product_key, old_price, new_price, drop_percent, url)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), runID, e.ProductKey, e.OldPrice, e.NewPrice, e.DropPercent, e.URL,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert price drop event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit events: %w", err)
	}
	return nil
}

func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, state, started_at, finished_at, price_drops, negative_batch,
		        negative_count, parse_warnings, dispatch_attempts, dispatch_failures, error
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunSummary
	for rows.Next() {
		var r model.RunSummary
		var state string
		var negative int
		if err := rows.Scan(&r.ID, &state, &r.StartedAt, &r.FinishedAt, &r.PriceDrops,
			&negative, &r.NegativeCount, &r.ParseWarnings,
			&r.DispatchAttempts, &r.DispatchFailures, &r.Error); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.State = model.RunState(state)
		r.NegativeBatch = negative != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLite) EventsForRun(ctx context.Context, runID string) ([]model.PriceDropEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_key, old_price, new_price, drop_percent, url
		 FROM price_drop_events WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []model.PriceDropEvent
	for rows.Next() {
		var e model.PriceDropEvent
		if err := rows.Scan(&e.ProductKey, &e.OldPrice, &e.NewPrice, &e.DropPercent, &e.URL); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
