package delta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adi1913/competitor-tracker/pkg/delta"
	"github.com/adi1913/competitor-tracker/pkg/model"
	"github.com/adi1913/competitor-tracker/pkg/snapshot"
)

func review(product, reviewer, text string, rating int) model.ReviewRecord {
	return model.ReviewRecord{ProductKey: product, Reviewer: reviewer, Text: text, Rating: model.Rating(rating)}
}

func reviewBaseline(records ...model.ReviewRecord) snapshot.Baseline[model.ReviewRecord] {
	return snapshot.Baseline[model.ReviewRecord]{Records: records, Present: true}
}

func TestNegativeReviews_FirstRunTreatsAllAsNew(t *testing.T) {
	current := []model.ReviewRecord{
		review("Phone A", "sam", "awful", 1),
		review("Phone A", "kim", "broken", 2),
	}
	absent := snapshot.Baseline[model.ReviewRecord]{}

	batch := delta.NegativeReviews(current, absent, delta.DefaultReviewConfig())
	require.NotNil(t, batch)
	assert.Equal(t, 2, batch.Count)
}

func TestNegativeReviews_BelowThresholdEmitsNothing(t *testing.T) {
	current := []model.ReviewRecord{review("Phone A", "sam", "awful", 1)}
	absent := snapshot.Baseline[model.ReviewRecord]{}

	assert.Nil(t, delta.NegativeReviews(current, absent, delta.DefaultReviewConfig()))
}

func TestNegativeReviews_ExactThresholdEmits(t *testing.T) {
	prev := reviewBaseline(review("Phone A", "old", "fine", 4))
	current := []model.ReviewRecord{
		review("Phone A", "old", "fine", 4),
		review("Phone A", "sam", "awful", 1),
		review("Phone A", "kim", "broken", 2),
	}

	batch := delta.NegativeReviews(current, prev, delta.DefaultReviewConfig())
	require.NotNil(t, batch)
	assert.Equal(t, 2, batch.Count)
}

func TestNegativeReviews_ChangedRatingIsNotNew(t *testing.T) {
	prev := reviewBaseline(review("Phone A", "sam", "bad battery", 4))
	current := []model.ReviewRecord{
		review("Phone A", "sam", "bad battery", 1), // same identity, rating changed
		review("Phone A", "kim", "broken", 1),
		review("Phone A", "alex", "awful", 2),
	}

	batch := delta.NegativeReviews(current, prev, delta.DefaultReviewConfig())
	require.NotNil(t, batch)
	assert.Equal(t, 2, batch.Count, "the re-rated review must not count as new")
}

func TestNegativeReviews_AbsentRatingNeverNegative(t *testing.T) {
	current := []model.ReviewRecord{
		{ProductKey: "Phone A", Reviewer: "sam", Text: "terrible"}, // no rating
		review("Phone A", "kim", "broken", 1),
	}
	absent := snapshot.Baseline[model.ReviewRecord]{}

	assert.Nil(t, delta.NegativeReviews(current, absent, delta.DefaultReviewConfig()))
}

func TestNegativeReviews_NonNegativeRatingsIgnored(t *testing.T) {
	current := []model.ReviewRecord{
		review("Phone A", "sam", "fine", 3),
		review("Phone A", "kim", "great", 5),
		review("Phone A", "alex", "ok", 4),
	}
	absent := snapshot.Baseline[model.ReviewRecord]{}

	assert.Nil(t, delta.NegativeReviews(current, absent, delta.DefaultReviewConfig()))
}

func TestNegativeReviews_SampleIsFirstInCurrentOrder(t *testing.T) {
	current := []model.ReviewRecord{
		review("Phone A", "sam", "fine", 5),
		review("Phone B", "kim", "broken screen", 1),
		review("Phone C", "alex", "awful", 2),
	}
	absent := snapshot.Baseline[model.ReviewRecord]{}

	batch := delta.NegativeReviews(current, absent, delta.DefaultReviewConfig())
	require.NotNil(t, batch)
	assert.Equal(t, "Phone B", batch.Sample.ProductKey)
	assert.Equal(t, "broken screen", batch.Sample.Text)
}

func TestNegativeReviews_CustomNegativeSet(t *testing.T) {
	current := []model.ReviewRecord{
		review("Phone A", "sam", "meh", 3),
		review("Phone A", "kim", "meh too", 3),
	}
	absent := snapshot.Baseline[model.ReviewRecord]{}

	cfg := delta.ReviewConfig{Threshold: 2, NegativeRatings: map[int]bool{1: true, 2: true, 3: true}}
	batch := delta.NegativeReviews(current, absent, cfg)
	require.NotNil(t, batch)
	assert.Equal(t, 2, batch.Count)
}

func TestNegativeReviews_RemovedReviewsIrrelevant(t *testing.T) {
	prev := reviewBaseline(
		review("Phone A", "gone", "deleted review", 1),
		review("Phone A", "also-gone", "deleted too", 1),
	)
	current := []model.ReviewRecord{review("Phone A", "sam", "fine", 5)}

	assert.Nil(t, delta.NegativeReviews(current, prev, delta.DefaultReviewConfig()))
}
