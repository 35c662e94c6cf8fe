package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adi1913/competitor-tracker/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/current_products.csv", cfg.Data.CurrentProducts)
	assert.Equal(t, "data/previous_products.csv", cfg.Data.PreviousProducts)
	assert.Equal(t, "data/current_reviews.csv", cfg.Data.CurrentReviews)
	assert.Equal(t, "data/previous_reviews.csv", cfg.Data.PreviousReviews)
	assert.InDelta(t, 10.0, cfg.Alerts.DropThresholdPct, 0.001)
	assert.Equal(t, 2, cfg.Alerts.NegativeReviewThreshold)
	assert.Equal(t, []int{1, 2}, cfg.Alerts.NegativeRatings)
	assert.Equal(t, 465, cfg.Alerts.Email.Port)
	assert.False(t, cfg.Alerts.Email.Enabled)
	assert.False(t, cfg.Alerts.Webhook.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := []byte(`
data:
  current_products: /srv/scrape/products.csv
  previous_products: /srv/scrape/products_prev.csv
alerts:
  drop_threshold_pct: 7.5
  negative_review_threshold: 3
  negative_ratings: [1]
  email:
    enabled: true
    host: smtp.example.com
    from: alerts@example.com
    to: ops@example.com
logging:
  level: debug
  format: text
`)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "/srv/scrape/products.csv", cfg.Data.CurrentProducts)
	assert.Equal(t, "/srv/scrape/products_prev.csv", cfg.Data.PreviousProducts)
	assert.InDelta(t, 7.5, cfg.Alerts.DropThresholdPct, 0.001)
	assert.Equal(t, 3, cfg.Alerts.NegativeReviewThreshold)
	assert.Equal(t, []int{1}, cfg.Alerts.NegativeRatings)
	assert.True(t, cfg.Alerts.Email.Enabled)
	assert.Equal(t, "smtp.example.com", cfg.Alerts.Email.Host)
	assert.Equal(t, 465, cfg.Alerts.Email.Port, "default port survives partial email config")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CTRACK_LOGGING_LEVEL", "error")
	t.Setenv("CTRACK_ALERTS_DROP_THRESHOLD_PCT", "15")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.InDelta(t, 15.0, cfg.Alerts.DropThresholdPct, 0.001)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("alerts: [yaml"), 0o644))

	_, err := config.Load(cfgPath)
	assert.Error(t, err)
}
