package delta

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adi1913/competitor-tracker/pkg/model"
)

// thresholdFile is the on-disk shape of a per-product threshold file:
//
//	products:
//	  - product: "Phone A"
//	    drop_threshold_pct: 5
type thresholdFile struct {
	Products []struct {
		Product      string  `yaml:"product"`
		ThresholdPct float64 `yaml:"drop_threshold_pct"`
	} `yaml:"products"`
}

// LoadThresholdOverrides reads a YAML file of per-product drop
// thresholds, keyed by normalized product name.
func LoadThresholdOverrides(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read thresholds file %s: %w", path, err)
	}
	return parseThresholdOverrides(data, path)
}

func parseThresholdOverrides(data []byte, path string) (map[string]float64, error) {
	var f thresholdFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse thresholds file %s: %w", path, err)
	}

	overrides := make(map[string]float64, len(f.Products))
	for _, p := range f.Products {
		key := model.NormalizeProductKey(p.Product)
		if key == "" {
			return nil, fmt.Errorf("thresholds file %s: entry with empty product name", path)
		}
		if p.ThresholdPct <= 0 {
			return nil, fmt.Errorf("thresholds file %s: product %q: drop_threshold_pct must be positive", path, key)
		}
		overrides[key] = p.ThresholdPct
	}
	return overrides, nil
}
