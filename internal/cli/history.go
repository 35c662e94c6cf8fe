package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past run summaries",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().String("events", "", "Show the price-drop events of the given run ID")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, _ := cmd.Flags().GetString("events")
	if runID != "" {
		events, err := store.EventsForRun(cmd.Context(), runID)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No price-drop events recorded for this run.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "PRODUCT\tOLD\tNEW\tDROP\n")
		for _, e := range events {
			fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f%%\n", e.ProductKey, e.OldPrice, e.NewPrice, e.DropPercent)
		}
		return w.Flush()
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Use 'ctrack run' to execute one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "STARTED\tSTATE\tDROPS\tNEGATIVE\tWARNINGS\tDISPATCH\tID\n")
	for _, r := range runs {
		negative := "-"
		if r.NegativeBatch {
			negative = fmt.Sprintf("%d", r.NegativeCount)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d/%d\t%s\n",
			r.StartedAt.Format("2006-01-02 15:04"),
			r.State, r.PriceDrops, negative, r.ParseWarnings,
			r.DispatchAttempts-r.DispatchFailures, r.DispatchAttempts, r.ID,
		)
	}
	return w.Flush()
}
