package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all Competitor Tracker configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Alerts  AlertsConfig  `mapstructure:"alerts"`
	Storage StorageConfig `mapstructure:"storage"`
	Run     RunConfig     `mapstructure:"run"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig locates the snapshot generations on disk.
type DataConfig struct {
	CurrentProducts  string `mapstructure:"current_products"`
	PreviousProducts string `mapstructure:"previous_products"`
	CurrentReviews   string `mapstructure:"current_reviews"`
	PreviousReviews  string `mapstructure:"previous_reviews"`
}

// AlertsConfig defines detection thresholds and notification channels.
type AlertsConfig struct {
	DropThresholdPct        float64       `mapstructure:"drop_threshold_pct"`
	NegativeReviewThreshold int           `mapstructure:"negative_review_threshold"`
	NegativeRatings         []int         `mapstructure:"negative_ratings"`
	ThresholdsFile          string        `mapstructure:"thresholds_file"`
	Email                   EmailConfig   `mapstructure:"email"`
	Webhook                 WebhookConfig `mapstructure:"webhook"`
}

// EmailConfig defines the SMTP notification channel.
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
	Password string `mapstructure:"password"`
}

// WebhookConfig defines the generic webhook channel.
type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Secret  string `mapstructure:"secret"`
}

// StorageConfig defines run-history database settings.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// RunConfig defines run-scoped settings.
type RunConfig struct {
	LockPath string `mapstructure:"lock_path"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}

		v.AddConfigPath(filepath.Join(home, ".ctrack"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Defaults
	home, _ := os.UserHomeDir()
	v.SetDefault("data.current_products", "data/current_products.csv")
	v.SetDefault("data.previous_products", "data/previous_products.csv")
	v.SetDefault("data.current_reviews", "data/current_reviews.csv")
	v.SetDefault("data.previous_reviews", "data/previous_reviews.csv")
	v.SetDefault("alerts.drop_threshold_pct", 10.0)
	v.SetDefault("alerts.negative_review_threshold", 2)
	v.SetDefault("alerts.negative_ratings", []int{1, 2})
	v.SetDefault("alerts.email.port", 465)
	v.SetDefault("storage.path", filepath.Join(home, ".ctrack", "tracker.db"))
	v.SetDefault("run.lock_path", filepath.Join(home, ".ctrack", "run.lock"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Environment variables
	v.SetEnvPrefix("CTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
