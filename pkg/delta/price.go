// Package delta compares two snapshot generations and decides what is
// worth alerting on.
package delta

import (
	"github.com/adi1913/competitor-tracker/pkg/model"
	"github.com/adi1913/competitor-tracker/pkg/snapshot"
)

// DefaultDropThresholdPct is the percentage drop at which a price
// change becomes an alert.
const DefaultDropThresholdPct = 10.0

// PriceConfig controls price-drop detection.
type PriceConfig struct {
	// ThresholdPct is inclusive: a drop of exactly this percentage emits.
	ThresholdPct float64

	// Overrides maps a normalized product key to a per-product
	// threshold that replaces ThresholdPct for that product.
	Overrides map[string]float64
}

// DefaultPriceConfig returns a PriceConfig with the stock threshold.
func DefaultPriceConfig() PriceConfig {
	return PriceConfig{ThresholdPct: DefaultDropThresholdPct}
}

func (c PriceConfig) thresholdFor(key string) float64 {
	if t, ok := c.Overrides[key]; ok {
		return t
	}
	return c.ThresholdPct
}

// PriceDrops joins the current generation against the previous one by
// product key and emits an event for every product whose price fell by
// at least the threshold.
//
// The join is inner: products present in only one generation have no
// drop to report. An absent baseline (first run) produces no events.
// Output order follows the current generation, so identical inputs
// always produce the identical event list.
func PriceDrops(current []model.ProductRecord, previous snapshot.Baseline[model.ProductRecord], cfg PriceConfig) []model.PriceDropEvent {
	if !previous.Present {
		return nil
	}

	old := make(map[string]model.ProductRecord, len(previous.Records))
	for _, p := range previous.Records {
		old[p.Key] = p
	}

	var events []model.PriceDropEvent
	for _, cur := range current {
		prev, ok := old[cur.Key]
		if !ok || cur.Price == nil || prev.Price == nil {
			continue
		}
		oldPrice, newPrice := *prev.Price, *cur.Price
		if oldPrice <= 0 {
			continue
		}
		drop := (oldPrice - newPrice) / oldPrice * 100
		if drop < cfg.thresholdFor(cur.Key) {
			continue
		}
		events = append(events, model.PriceDropEvent{
			ProductKey:  cur.Key,
			OldPrice:    oldPrice,
			NewPrice:    newPrice,
			DropPercent: drop,
			URL:         cur.URL,
		})
	}
	return events
}
