package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/adi1913/competitor-tracker/internal/config"
	"github.com/adi1913/competitor-tracker/pkg/alerts"
	"github.com/adi1913/competitor-tracker/pkg/delta"
	"github.com/adi1913/competitor-tracker/pkg/storage"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ctrack",
	Short: "Competitor Tracker - price drop and review alerting",
	Long: `Competitor Tracker compares the current scrape of competitor products
and reviews against the previous run's baseline, detects price drops and
bursts of negative reviews, and sends alerts through the configured
notification channels.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.ctrack/config.yaml)")
}

// loadConfig preloads a local .env (credentials live there on operator
// machines) and then reads the configuration.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load(cfgFile)
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// initStorage creates the run-history store from config.
func initStorage(cfg *config.Config) (storage.Storage, error) {
	return storage.NewSQLite(cfg.Storage.Path)
}

// initNotifiers creates alert notifiers from config.
func initNotifiers(cfg *config.Config) []alerts.Notifier {
	var notifiers []alerts.Notifier

	if cfg.Alerts.Email.Enabled && cfg.Alerts.Email.Host != "" {
		notifiers = append(notifiers, alerts.NewSMTPNotifier(
			cfg.Alerts.Email.Host,
			cfg.Alerts.Email.Port,
			cfg.Alerts.Email.From,
			cfg.Alerts.Email.To,
			cfg.Alerts.Email.Password,
		))
	}

	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alerts.NewWebhookNotifier(
			cfg.Alerts.Webhook.URL,
			cfg.Alerts.Webhook.Secret,
		))
	}

	return notifiers
}

// initPriceConfig builds the price-drop detection config, including any
// per-product threshold override file.
func initPriceConfig(cfg *config.Config) (delta.PriceConfig, error) {
	priceCfg := delta.PriceConfig{ThresholdPct: cfg.Alerts.DropThresholdPct}
	if cfg.Alerts.ThresholdsFile == "" {
		return priceCfg, nil
	}
	if _, err := os.Stat(cfg.Alerts.ThresholdsFile); os.IsNotExist(err) {
		return priceCfg, nil
	}
	overrides, err := delta.LoadThresholdOverrides(cfg.Alerts.ThresholdsFile)
	if err != nil {
		return priceCfg, err
	}
	priceCfg.Overrides = overrides
	return priceCfg, nil
}

// initReviewConfig builds the negative-review detection config.
func initReviewConfig(cfg *config.Config) delta.ReviewConfig {
	reviewCfg := delta.ReviewConfig{
		Threshold:       cfg.Alerts.NegativeReviewThreshold,
		NegativeRatings: make(map[int]bool, len(cfg.Alerts.NegativeRatings)),
	}
	for _, r := range cfg.Alerts.NegativeRatings {
		reviewCfg.NegativeRatings[r] = true
	}
	return reviewCfg
}
