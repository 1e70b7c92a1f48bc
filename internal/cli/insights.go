package cli

import (
	"context"

	"github.com/spf13/cobra"

	"trading-journal/internal/analysis/insights"
	"trading-journal/internal/errors"
	"trading-journal/internal/journal"
)

// addInsightsCommands adds the pattern-insight command.
func addInsightsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Detect patterns in trading performance",
		Long: `Scan the journal for actionable patterns: strongest and weakest
symbols, days, sessions, and setups, side bias, and tilt warnings.`,
		Example: `  journal insights
  journal insights --range 90days`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			if app.Store == nil {
				return errors.ErrDatabase
			}
			trades, err := app.Store.GetTrades(ctx)
			if err != nil {
				return err
			}
			filtered := journal.ApplyFilters(trades, filterFromFlags(cmd))
			found := insights.Generate(filtered)

			if output.IsJSON() {
				return output.JSON(found)
			}

			if len(found) == 0 {
				output.Info("Not enough data for insights yet. Keep journaling.")
				return nil
			}

			output.Bold("Insights")
			for _, in := range found {
				output.Printf("  %s %s\n", output.SeverityTag(string(in.Severity)), output.BoldText(in.Title))
				output.Printf("     %s\n", in.Detail)
			}
			return nil
		},
	}

	addFilterFlags(cmd)

	rootCmd.AddCommand(cmd)
}
