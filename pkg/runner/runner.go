// Package runner sequences one pass of the alerting pipeline:
// load snapshots, compute deltas, dispatch alerts, roll the baseline.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adi1913/competitor-tracker/pkg/alerts"
	"github.com/adi1913/competitor-tracker/pkg/delta"
	"github.com/adi1913/competitor-tracker/pkg/model"
	"github.com/adi1913/competitor-tracker/pkg/snapshot"
	"github.com/adi1913/competitor-tracker/pkg/storage"
)

// SourceSet names the four snapshot generations a run reads.
type SourceSet struct {
	CurrentProducts  snapshot.Source
	PreviousProducts snapshot.Source
	CurrentReviews   snapshot.Source
	PreviousReviews  snapshot.Source
}

// RolloverFunc promotes the current generation to become the previous
// one for the next run, for both record types.
type RolloverFunc func() error

// NewFileRollover returns a RolloverFunc that copies each current file
// over its previous path atomically.
func NewFileRollover(pairs ...snapshot.FilePair) RolloverFunc {
	return func() error {
		for _, p := range pairs {
			if err := snapshot.Rollover(p.Current, p.Previous); err != nil {
				return err
			}
		}
		return nil
	}
}

// Config holds everything a Runner needs. There is no process-wide
// state; thresholds and channels are passed in at construction.
type Config struct {
	Sources  SourceSet
	Price    delta.PriceConfig
	Review   delta.ReviewConfig
	Rollover RolloverFunc

	// Notifiers receive the rendered alerts. Empty means detection
	// only, which is useful for dry runs.
	Notifiers []alerts.Notifier

	// History, when non-nil, receives the run summary and events.
	// Store failures are logged, never fatal to the run.
	History storage.Storage

	Logger *slog.Logger
}

// Runner executes the pipeline. One Run call is one pass of the state
// sequence LOAD, DELTA, DISPATCH, ROLLOVER; a missing current source
// fails the run during LOAD and leaves the baseline untouched.
type Runner struct {
	cfg        Config
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// New creates a Runner from explicit configuration.
func New(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:        cfg,
		dispatcher: NewDispatcher(cfg.Notifiers, logger),
		logger:     logger,
	}
}

// Run executes one pipeline pass and returns its summary. The returned
// error is non-nil only for run-fatal conditions: a missing current
// source, or a failed baseline rollover.
func (r *Runner) Run(ctx context.Context) (*model.RunSummary, error) {
	summary := &model.RunSummary{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}

	// LOAD
	products, prevProducts, prodStats, err := snapshot.LoadProducts(ctx, r.cfg.Sources.CurrentProducts, r.cfg.Sources.PreviousProducts)
	if err != nil {
		return r.fail(ctx, summary, fmt.Errorf("load products: %w", err))
	}
	reviews, prevReviews, revStats, err := snapshot.LoadReviews(ctx, r.cfg.Sources.CurrentReviews, r.cfg.Sources.PreviousReviews)
	if err != nil {
		return r.fail(ctx, summary, fmt.Errorf("load reviews: %w", err))
	}
	prodStats.Add(revStats)
	summary.ParseWarnings = prodStats.ParseWarnings

	if !prevProducts.Present {
		r.logger.Info("no product baseline, first run for products")
	}
	if !prevReviews.Present {
		r.logger.Info("no review baseline, first run for reviews")
	}

	// DELTA
	drops := delta.PriceDrops(products, prevProducts, r.cfg.Price)
	batch := delta.NegativeReviews(reviews, prevReviews, r.cfg.Review)
	summary.PriceDrops = len(drops)
	if batch != nil {
		summary.NegativeBatch = true
		summary.NegativeCount = batch.Count
	}

	r.logger.Info("delta computed",
		"products", len(products),
		"reviews", len(reviews),
		"price_drops", len(drops),
		"negative_batch", batch != nil,
		"parse_warnings", summary.ParseWarnings,
	)

	// DISPATCH
	result := r.dispatcher.Dispatch(ctx, drops, batch)
	summary.DispatchAttempts = result.Attempts
	summary.DispatchFailures = result.Failures

	// ROLLOVER advances the baseline exactly once per successful LOAD,
	// regardless of the dispatch outcome, so a retried dispatch cannot
	// re-detect the same drops.
	var rolloverErr error
	if r.cfg.Rollover != nil {
		if rolloverErr = r.cfg.Rollover(); rolloverErr != nil {
			summary.Error = rolloverErr.Error()
			r.logger.Error("baseline rollover failed", "error", rolloverErr)
		}
	}

	summary.State = model.RunDone
	summary.FinishedAt = time.Now().UTC()
	r.record(ctx, summary, drops)
	return summary, rolloverErr
}

// fail finalizes a run that could not get past LOAD. No dispatch, no
// rollover: the last good baseline stays in place for the retry.
func (r *Runner) fail(ctx context.Context, summary *model.RunSummary, err error) (*model.RunSummary, error) {
	summary.State = model.RunFailed
	summary.Error = err.Error()
	summary.FinishedAt = time.Now().UTC()
	r.logger.Error("run failed", "error", err)
	r.record(ctx, summary, nil)
	return summary, err
}

func (r *Runner) record(ctx context.Context, summary *model.RunSummary, drops []model.PriceDropEvent) {
	if r.cfg.History == nil {
		return
	}
	if err := r.cfg.History.RecordRun(ctx, summary); err != nil {
		r.logger.Error("record run history", "error", err)
		return
	}
	if err := r.cfg.History.RecordPriceDrops(ctx, summary.ID, drops); err != nil {
		r.logger.Error("record price drop events", "error", err)
	}
}
