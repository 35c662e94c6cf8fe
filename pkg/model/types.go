package model

import (
	"strings"
	"time"
)

// ProductRecord is one product row from a snapshot generation.
// Key is the normalized product name and is unique within a generation.
type ProductRecord struct {
	Key   string   `json:"key"`
	Price *float64 `json:"price,omitempty"`
	URL   string   `json:"url,omitempty"`
}

// ReviewRecord is one review row from a snapshot generation.
// Rating is nil when the source field was absent or unparseable.
type ReviewRecord struct {
	ProductKey string `json:"product_key"`
	Reviewer   string `json:"reviewer"`
	Text       string `json:"text"`
	Rating     *int   `json:"rating,omitempty"`
}

// ReviewKey is the identity composite for a review. Two reviews denote
// the same underlying review iff all three fields match exactly; the
// rating is deliberately excluded.
type ReviewKey struct {
	ProductKey string
	Reviewer   string
	Text       string
}

// Identity returns the review's identity composite.
func (r ReviewRecord) Identity() ReviewKey {
	return ReviewKey{ProductKey: r.ProductKey, Reviewer: r.Reviewer, Text: r.Text}
}

// PriceDropEvent is emitted when a product's price fell by at least the
// configured threshold between the previous and current generations.
type PriceDropEvent struct {
	ProductKey  string  `json:"product_key"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
	DropPercent float64 `json:"drop_percent"`
	URL         string  `json:"url,omitempty"`
}

// NegativeReviewBatch is emitted at most once per run when the number
// of new negative reviews reaches the configured threshold.
type NegativeReviewBatch struct {
	Count  int          `json:"count"`
	Sample ReviewRecord `json:"sample"`
}

// RunState is the terminal state of a pipeline run.
type RunState string

const (
	RunDone   RunState = "done"
	RunFailed RunState = "failed"
)

// RunSummary is the per-run outcome surfaced to the caller and kept in
// the run-history store.
type RunSummary struct {
	ID               string    `json:"id" db:"id"`
	State            RunState  `json:"state" db:"state"`
	StartedAt        time.Time `json:"started_at" db:"started_at"`
	FinishedAt       time.Time `json:"finished_at" db:"finished_at"`
	PriceDrops       int       `json:"price_drops" db:"price_drops"`
	NegativeBatch    bool      `json:"negative_batch" db:"negative_batch"`
	NegativeCount    int       `json:"negative_count" db:"negative_count"`
	ParseWarnings    int       `json:"parse_warnings" db:"parse_warnings"`
	DispatchAttempts int       `json:"dispatch_attempts" db:"dispatch_attempts"`
	DispatchFailures int       `json:"dispatch_failures" db:"dispatch_failures"`
	Error            string    `json:"error,omitempty" db:"error"`
}

// NormalizeProductKey collapses runs of whitespace to single spaces,
// replaces non-breaking spaces, and trims the edges. Matching after
// normalization is case-sensitive.
func NormalizeProductKey(name string) string {
	name = strings.ReplaceAll(name, " ", " ")
	return strings.Join(strings.Fields(name), " ")
}

// Price is a convenience constructor for optional price values.
func Price(v float64) *float64 { return &v }

// Rating is a convenience constructor for optional rating values.
func Rating(v int) *int { return &v }
