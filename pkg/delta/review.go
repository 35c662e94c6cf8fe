package delta

import (
	"github.com/adi1913/competitor-tracker/pkg/model"
	"github.com/adi1913/competitor-tracker/pkg/snapshot"
)

// DefaultNegativeThreshold is the minimum number of new negative
// reviews that triggers a batch alert.
const DefaultNegativeThreshold = 2

// ReviewConfig controls negative-review detection.
type ReviewConfig struct {
	// Threshold is inclusive: exactly this many new negatives emits.
	Threshold int

	// NegativeRatings is the set of rating values treated as negative.
	NegativeRatings map[int]bool
}

// DefaultReviewConfig returns a ReviewConfig with ratings 1 and 2
// counted as negative.
func DefaultReviewConfig() ReviewConfig {
	return ReviewConfig{
		Threshold:       DefaultNegativeThreshold,
		NegativeRatings: map[int]bool{1: true, 2: true},
	}
}

// NegativeReviews finds reviews that are new since the previous
// generation, counts the negative ones, and emits at most one batch
// per run when the count reaches the threshold.
//
// A review is "new" when its identity composite (product, reviewer,
// text) does not appear in the previous generation; a changed rating
// alone does not make a review new. On the first run every current
// review is new. Reviews without a rating are never counted negative.
// The batch sample is the first qualifying review in current order.
func NegativeReviews(current []model.ReviewRecord, previous snapshot.Baseline[model.ReviewRecord], cfg ReviewConfig) *model.NegativeReviewBatch {
	known := make(map[model.ReviewKey]struct{}, len(previous.Records))
	if previous.Present {
		for _, r := range previous.Records {
			known[r.Identity()] = struct{}{}
		}
	}

	var count int
	var sample *model.ReviewRecord
	for _, r := range current {
		if previous.Present {
			if _, ok := known[r.Identity()]; ok {
				continue
			}
		}
		if r.Rating == nil || !cfg.NegativeRatings[*r.Rating] {
			continue
		}
		if sample == nil {
			rc := r
			sample = &rc
		}
		count++
	}

	if sample == nil || count < cfg.Threshold {
		return nil
	}
	return &model.NegativeReviewBatch{Count: count, Sample: *sample}
}
