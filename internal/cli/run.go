package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adi1913/competitor-tracker/pkg/model"
	"github.com/adi1913/competitor-tracker/pkg/runner"
	"github.com/adi1913/competitor-tracker/pkg/snapshot"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one alerting pass",
	Long: `Load the current and previous snapshots, detect price drops and new
negative reviews, dispatch alerts, and promote the current snapshot to
become the next run's baseline.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("dry-run", false, "Detect only: no alerts sent, no baseline rollover")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	lock, err := snapshot.AcquireRunLock(cfg.Run.LockPath)
	if err != nil {
		return err
	}
	defer lock.Release()

	priceCfg, err := initPriceConfig(cfg)
	if err != nil {
		return err
	}

	store, err := initStorage(cfg)
	if err != nil {
		return fmt.Errorf("init run history: %w", err)
	}
	defer store.Close()

	rc := runner.Config{
		Sources: runner.SourceSet{
			CurrentProducts:  snapshot.NewCSVSource("current products", cfg.Data.CurrentProducts),
			PreviousProducts: snapshot.NewCSVSource("previous products", cfg.Data.PreviousProducts),
			CurrentReviews:   snapshot.NewCSVSource("current reviews", cfg.Data.CurrentReviews),
			PreviousReviews:  snapshot.NewCSVSource("previous reviews", cfg.Data.PreviousReviews),
		},
		Price:   priceCfg,
		Review:  initReviewConfig(cfg),
		History: store,
		Logger:  logger,
	}
	if !dryRun {
		rc.Notifiers = initNotifiers(cfg)
		rc.Rollover = runner.NewFileRollover(
			snapshot.FilePair{Current: cfg.Data.CurrentProducts, Previous: cfg.Data.PreviousProducts},
			snapshot.FilePair{Current: cfg.Data.CurrentReviews, Previous: cfg.Data.PreviousReviews},
		)
	}

	summary, runErr := runner.New(rc).Run(cmd.Context())
	printSummary(summary)
	return runErr
}

func printSummary(s *model.RunSummary) {
	fmt.Printf("Run %s: %s\n", s.ID, s.State)
	fmt.Printf("  Price drops:        %d\n", s.PriceDrops)
	if s.NegativeBatch {
		fmt.Printf("  Negative reviews:   %d (batch alert emitted)\n", s.NegativeCount)
	} else {
		fmt.Printf("  Negative reviews:   below threshold\n")
	}
	fmt.Printf("  Parse warnings:     %d\n", s.ParseWarnings)
	fmt.Printf("  Dispatch:           %d attempted, %d failed\n", s.DispatchAttempts, s.DispatchFailures)
	if s.Error != "" {
		fmt.Printf("  Error:              %s\n", s.Error)
	}
}
