package runner

import (
	"context"
	"log/slog"

	"github.com/adi1913/competitor-tracker/pkg/alerts"
	"github.com/adi1913/competitor-tracker/pkg/model"
)

// Dispatcher fans rendered notifications out to the configured
// notifiers. A failed send never blocks the remaining payloads.
type Dispatcher struct {
	notifiers []alerts.Notifier
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher over the given notifiers.
func NewDispatcher(notifiers []alerts.Notifier, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{notifiers: notifiers, logger: logger}
}

// DispatchResult counts send outcomes for one run. Attempts is the
// number of payload/notifier sends tried, Failures how many of them
// returned an error.
type DispatchResult struct {
	Attempts int
	Failures int
}

// Dispatch sends one notification per price-drop event plus at most one
// for the negative-review batch.
func (d *Dispatcher) Dispatch(ctx context.Context, events []model.PriceDropEvent, batch *model.NegativeReviewBatch) DispatchResult {
	var result DispatchResult

	for _, e := range events {
		n := alerts.RenderPriceDrop(e)
		d.send(ctx, n, &result, "product", e.ProductKey)
	}
	if batch != nil {
		n := alerts.RenderNegativeBatch(*batch)
		d.send(ctx, n, &result, "negative_count", batch.Count)
	}
	return result
}

func (d *Dispatcher) send(ctx context.Context, n alerts.Notification, result *DispatchResult, attrs ...any) {
	for _, notifier := range d.notifiers {
		result.Attempts++
		if err := notifier.Send(ctx, n); err != nil {
			result.Failures++
			args := append([]any{"notifier", notifier.Name(), "subject", n.Subject, "error", err}, attrs...)
			d.logger.Error("send alert failed", args...)
			continue
		}
		d.logger.Info("alert sent", append([]any{"notifier", notifier.Name(), "subject", n.Subject}, attrs...)...)
	}
}
