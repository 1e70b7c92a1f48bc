package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"trading-journal/internal/analysis/metrics"
	"trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// checkGoals evaluates today's unfiltered trades against the thresholds.
func checkGoals(trades []models.Trade, goals models.DailyGoals) metrics.GoalStatus {
	return metrics.CheckDailyGoals(trades, goals)
}

// goalsFor loads the saved thresholds, falling back to the configured
// ones when nothing has been saved yet or the store is unavailable.
func goalsFor(ctx context.Context, app *App) models.DailyGoals {
	if app.Store != nil {
		if goals, err := app.Store.GetGoals(ctx); err == nil {
			return goals
		}
	}
	if app.Config != nil {
		return app.Config.Goals.DailyGoals()
	}
	return models.DefaultDailyGoals()
}

// addGoalsCommands adds daily-goal commands.
func addGoalsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Daily goal management",
		Long:  "View, set, and check daily risk and profit goals.",
	}

	cmd.AddCommand(newGoalsShowCmd(app))
	cmd.AddCommand(newGoalsSetCmd(app))
	cmd.AddCommand(newGoalsCheckCmd(app))

	rootCmd.AddCommand(cmd)
}

func newGoalsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the configured daily goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			goals := goalsFor(ctx, app)

			if output.IsJSON() {
				return output.JSON(goals)
			}

			output.Bold("Daily Goals")
			output.Printf("  Max Loss:       %s\n", FormatCurrency(goals.MaxLoss))
			output.Printf("  Target Profit:  %s\n", FormatCurrency(goals.TargetProfit))
			output.Printf("  Max Trades:     %d\n", goals.MaxTrades)
			return nil
		},
	}
}

func newGoalsSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set daily goal thresholds",
		Example: `  journal goals set --max-loss 500 --target-profit 1000
  journal goals set --max-trades 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			if app.Store == nil {
				return errors.ErrDatabase
			}
			goals, err := app.Store.GetGoals(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("max-loss") {
				goals.MaxLoss, _ = cmd.Flags().GetFloat64("max-loss")
			}
			if cmd.Flags().Changed("target-profit") {
				goals.TargetProfit, _ = cmd.Flags().GetFloat64("target-profit")
			}
			if cmd.Flags().Changed("max-trades") {
				goals.MaxTrades, _ = cmd.Flags().GetInt("max-trades")
			}

			if goals.MaxLoss < 0 || goals.TargetProfit < 0 || goals.MaxTrades < 0 {
				return errors.NewValidationError("goals", goals, "thresholds must not be negative")
			}

			if err := app.Store.SaveGoals(ctx, goals); err != nil {
				return err
			}
			output.Success("✓ Goals updated")
			return nil
		},
	}

	cmd.Flags().Float64("max-loss", 0, "daily loss limit (positive dollar amount)")
	cmd.Flags().Float64("target-profit", 0, "daily profit target")
	cmd.Flags().Int("max-trades", 0, "daily trade count limit")

	return cmd
}

func newGoalsCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check today's activity against the goals",
		Long:  "Evaluate today's trades against the thresholds. The check ignores active filters.",
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
			goals := goalsFor(ctx, app)
			status := checkGoals(trades, goals)

			if output.IsJSON() {
				return output.JSON(status)
			}

			output.Box("Today", []string{
				PadRight("Trades", 8) + PadLeft(fmt.Sprintf("%d / %d", status.Trades, goals.MaxTrades), 12),
				PadRight("P&L", 8) + PadLeft(FormatPnL(status.PnL), 12),
			})
			output.Println()

			if status.MaxLossHit {
				output.Warning("⚠ Max loss hit (limit %s). Step away.", FormatCurrency(goals.MaxLoss))
			}
			if status.MaxTradesHit {
				output.Warning("⚠ Trade limit reached (%d).", goals.MaxTrades)
			}
			if status.TargetHit {
				output.Success("✓ Profit target reached (%s).", FormatCurrency(goals.TargetProfit))
			}
			if !status.MaxLossHit && !status.MaxTradesHit && !status.TargetHit {
				output.Info(fmt.Sprintf("All goals within limits. Room for %d more trades.", goals.MaxTrades-status.Trades))
			}
			return nil
		},
	}
}
