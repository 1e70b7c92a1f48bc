package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"trading-journal/internal/analysis/metrics"
	"trading-journal/internal/errors"
	"trading-journal/internal/journal"
)

// addStatsCommands adds performance statistics commands.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newDrawdownCmd(app))
	rootCmd.AddCommand(newSizingCmd(app))
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show performance statistics",
		Long: `Compute the full performance summary over the journal,
honoring the active filters: win rate, profit factor, expectancy,
drawdown, streaks, R-multiple, Sharpe ratio, and Kelly criterion.`,
		Example: `  journal stats
  journal stats --range 30days
  journal stats --tags Breakout --outcome all`,
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
			summary := metrics.Compute(filtered)

			if output.IsJSON() {
				return output.JSON(summary)
			}

			if summary.TotalTrades == 0 {
				output.Info("No trades match the current filters.")
				return nil
			}

			output.Bold("Performance Summary")
			output.Printf("  Total Trades:     %d\n", summary.TotalTrades)
			output.Printf("  Winning Trades:   %d\n", summary.WinningTrades)
			output.Printf("  Losing Trades:    %d\n", summary.LosingTrades)
			output.Printf("  Win Rate:         %.1f%%\n", summary.WinRate)
			output.Printf("  Total P&L:        %s\n", output.FormatPnL(summary.TotalPnL))
			output.Println()

			output.Bold("Averages")
			output.Printf("  Avg Win:          %s\n", output.Green(FormatCurrency(summary.AverageWin)))
			output.Printf("  Avg Loss:         %s\n", output.Red(FormatCurrency(summary.AverageLoss)))
			output.Printf("  Expectancy:       %s\n", output.FormatPnL(summary.Expectancy))
			output.Printf("  Profit Factor:    %s\n", FormatRatio(summary.ProfitFactor))
			output.Println()

			output.Bold("Extremes")
			output.Printf("  Largest Win:      %s\n", output.Green(FormatCurrency(summary.LargestWin)))
			output.Printf("  Largest Loss:     %s\n", output.Red(FormatCurrency(summary.LargestLoss)))
			output.Printf("  Max Drawdown:     %s (%.1f%%)\n", output.Red(FormatCurrency(summary.MaxDrawdown)), summary.MaxDrawdownPercent)
			output.Println()

			output.Bold("Streaks")
			output.Printf("  Best Win Streak:  %d\n", summary.WinStreak)
			output.Printf("  Worst Loss Streak: %d\n", summary.LoseStreak)
			output.Printf("  Current Streak:   %s\n", formatStreak(output, summary.CurrentStreak))
			output.Println()

			output.Bold("Risk")
			output.Printf("  Avg R-Multiple:   %.2fR\n", summary.AvgRMultiple)
			output.Printf("  Sharpe Ratio:     %.2f\n", summary.SharpeRatio)
			output.Printf("  Kelly %%:          %.1f%%\n", summary.KellyPercent)

			return nil
		},
	}

	addFilterFlags(cmd)

	return cmd
}

func formatStreak(output *Output, streak int) string {
	if streak > 0 {
		return output.Green(fmt.Sprintf("%d wins", streak))
	}
	if streak < 0 {
		return output.Red(fmt.Sprintf("%d losses", -streak))
	}
	return "none"
}

func newDrawdownCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drawdown",
		Short: "Show the deepest drawdown periods",
		Long: `List the deepest equity drawdown periods, deepest first.
A period still below its peak at the end of the history is marked current.`,
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
			periods := metrics.DrawdownPeriods(filtered)

			if output.IsJSON() {
				return output.JSON(periods)
			}

			if len(periods) == 0 {
				output.Info("No drawdown periods found.")
				return nil
			}

			table := NewTable(output, "Start", "End", "Depth", "Depth %", "Status")
			for _, p := range periods {
				status := "recovered"
				if p.Current {
					status = output.Yellow("current")
				}
				table.AddRow(
					FormatDate(p.Start),
					FormatDate(p.End),
					output.Red(FormatCurrency(p.Depth)),
					fmt.Sprintf("%.1f%%", p.DepthPercent),
					status,
				)
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)

	return cmd
}

func newSizingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sizing",
		Short: "Show position sizing statistics",
		Long:  "Position value statistics (entry price times quantity), overall and per symbol.",
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
			sizing := metrics.Sizing(filtered)

			if output.IsJSON() {
				return output.JSON(sizing)
			}

			if len(filtered) == 0 {
				output.Info("No trades match the current filters.")
				return nil
			}

			output.Bold("Position Sizing")
			output.Printf("  Average:  %s\n", FormatCurrency(sizing.Average))
			output.Printf("  Min:      %s\n", FormatCurrency(sizing.Min))
			output.Printf("  Max:      %s\n", FormatCurrency(sizing.Max))
			output.Println()

			table := NewTable(output, "Symbol", "Trades", "Average", "Min", "Max")
			for _, s := range sizing.BySymbol {
				table.AddRow(
					s.Symbol,
					fmt.Sprintf("%d", s.Trades),
					FormatCurrency(s.Average),
					FormatCurrency(s.Min),
					FormatCurrency(s.Max),
				)
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)

	return cmd
}
