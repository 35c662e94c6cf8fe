package delta_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adi1913/competitor-tracker/pkg/delta"
)

func TestLoadThresholdOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	data := []byte(`
products:
  - product: "Phone  A"
    drop_threshold_pct: 5
  - product: "Phone B"
    drop_threshold_pct: 25.5
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	overrides, err := delta.LoadThresholdOverrides(path)
	require.NoError(t, err)

	// Keys are normalized on load.
	assert.InDelta(t, 5.0, overrides["Phone A"], 0.001)
	assert.InDelta(t, 25.5, overrides["Phone B"], 0.001)
	assert.Len(t, overrides, 2)
}

func TestLoadThresholdOverrides_MissingFile(t *testing.T) {
	_, err := delta.LoadThresholdOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadThresholdOverrides_InvalidThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	data := []byte("products:\n  - product: \"Phone A\"\n    drop_threshold_pct: -1\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := delta.LoadThresholdOverrides(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestLoadThresholdOverrides_EmptyProductName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	data := []byte("products:\n  - product: \"   \"\n    drop_threshold_pct: 5\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := delta.LoadThresholdOverrides(path)
	assert.Error(t, err)
}

func TestLoadThresholdOverrides_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products: [bad"), 0o644))

	_, err := delta.LoadThresholdOverrides(path)
	assert.Error(t, err)
}
