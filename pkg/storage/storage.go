package storage

import (
	"context"

	"github.com/adi1913/competitor-tracker/pkg/model"
)

// Storage defines the persistence layer for run history.
type Storage interface {
	// RecordRun persists a run summary.
	RecordRun(ctx context.Context, summary *model.RunSummary) error

	// RecordPriceDrops persists the price-drop events of a run.
	RecordPriceDrops(ctx context.Context, runID string, events []model.PriceDropEvent) error

	// ListRuns returns the most recent run summaries, newest first.
	ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error)

	// EventsForRun returns the price-drop events recorded for a run.
	EventsForRun(ctx context.Context, runID string) ([]model.PriceDropEvent, error)

	// Close releases resources.
	Close() error
}
