package snapshot

import (
	"context"
	"errors"
	"strconv"

	"github.com/adi1913/competitor-tracker/pkg/model"
)

// Baseline holds the previous generation of a record type. Present is
// false on the very first run, when there is nothing to diff against;
// that state is not an error and callers must branch on it explicitly.
type Baseline[T any] struct {
	Records []T
	Present bool
}

// LoadStats reports anomalies recovered during a load.
type LoadStats struct {
	// ParseWarnings counts records whose numeric field (price or
	// rating) was non-empty but unparseable. The field is recorded as
	// absent and the record kept.
	ParseWarnings int
	// Duplicates counts records discarded by within-generation dedup.
	Duplicates int
}

// Add accumulates stats from another load.
func (s *LoadStats) Add(o LoadStats) {
	s.ParseWarnings += o.ParseWarnings
	s.Duplicates += o.Duplicates
}

// LoadProducts reads the current and previous product generations.
// An unreadable current source is a *MissingDataError; a missing
// previous source yields an absent baseline.
func LoadProducts(ctx context.Context, current, previous Source) ([]model.ProductRecord, Baseline[model.ProductRecord], LoadStats, error) {
	var stats LoadStats

	rows, err := current.Read(ctx)
	if err != nil {
		return nil, Baseline[model.ProductRecord]{}, stats, &MissingDataError{Source: current.Name(), Err: err}
	}
	cur := parseProducts(rows, &stats)

	prevRows, err := previous.Read(ctx)
	if errors.Is(err, ErrNotFound) {
		return cur, Baseline[model.ProductRecord]{}, stats, nil
	}
	if err != nil {
		return nil, Baseline[model.ProductRecord]{}, stats, &MissingDataError{Source: previous.Name(), Err: err}
	}
	prev := parseProducts(prevRows, &stats)
	return cur, Baseline[model.ProductRecord]{Records: prev, Present: true}, stats, nil
}

// LoadReviews reads the current and previous review generations with
// the same contract as LoadProducts.
func LoadReviews(ctx context.Context, current, previous Source) ([]model.ReviewRecord, Baseline[model.ReviewRecord], LoadStats, error) {
	var stats LoadStats

	rows, err := current.Read(ctx)
	if err != nil {
		return nil, Baseline[model.ReviewRecord]{}, stats, &MissingDataError{Source: current.Name(), Err: err}
	}
	cur := parseReviews(rows, &stats)

	prevRows, err := previous.Read(ctx)
	if errors.Is(err, ErrNotFound) {
		return cur, Baseline[model.ReviewRecord]{}, stats, nil
	}
	if err != nil {
		return nil, Baseline[model.ReviewRecord]{}, stats, &MissingDataError{Source: previous.Name(), Err: err}
	}
	prev := parseReviews(prevRows, &stats)
	return cur, Baseline[model.ReviewRecord]{Records: prev, Present: true}, stats, nil
}

// parseProducts builds product records with normalized keys, applying
// keep-last dedup on duplicate keys. Output order follows first
// appearance of each key.
func parseProducts(rows []map[string]string, stats *LoadStats) []model.ProductRecord {
	index := make(map[string]int)
	var out []model.ProductRecord

	for _, row := range rows {
		name, _ := field(row, "Product", "ProductName", "product", "name")
		key := model.NormalizeProductKey(name)
		if key == "" {
			continue
		}

		rec := model.ProductRecord{Key: key}
		if raw, ok := field(row, "Price", "Price (₹)", "price"); ok && raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				rec.Price = &v
			} else {
				stats.ParseWarnings++
			}
		}
		rec.URL, _ = field(row, "URL", "Url", "url")

		if i, seen := index[key]; seen {
			out[i] = rec // last write wins
			stats.Duplicates++
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out
}

// parseReviews builds review records, dropping exact identity
// duplicates (first occurrence kept).
func parseReviews(rows []map[string]string, stats *LoadStats) []model.ReviewRecord {
	seen := make(map[model.ReviewKey]struct{})
	var out []model.ReviewRecord

	for _, row := range rows {
		name, _ := field(row, "ProductName", "Product", "product")
		key := model.NormalizeProductKey(name)
		if key == "" {
			continue
		}

		rec := model.ReviewRecord{ProductKey: key}
		rec.Reviewer, _ = field(row, "ReviewerName", "Reviewer", "reviewer")
		rec.Text, _ = field(row, "ReviewText", "Review", "review")
		if raw, ok := field(row, "Rating", "rating"); ok && raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				rec.Rating = &v
			} else {
				stats.ParseWarnings++
			}
		}

		id := rec.Identity()
		if _, dup := seen[id]; dup {
			stats.Duplicates++
			continue
		}
		seen[id] = struct{}{}
		out = append(out, rec)
	}
	return out
}
