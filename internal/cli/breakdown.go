package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/analysis/breakdown"
	"trading-journal/internal/errors"
	"trading-journal/internal/journal"
	"trading-journal/internal/models"
)

// addBreakdownCommands adds aggregation and time-series commands.
func addBreakdownCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newBreakdownCmd(app))
	rootCmd.AddCommand(newHeatmapCmd(app))
	rootCmd.AddCommand(newCurveCmd(app))
}

func newBreakdownCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "breakdown <dimension>",
		Short:     "Break down performance by dimension",
		Long:      "Aggregate trades by symbol, tag, day of week, hour, month, or session.",
		ValidArgs: []string{"symbol", "tag", "day", "hour", "month", "session"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Example: `  journal breakdown symbol
  journal breakdown day --range 90days
  journal breakdown tag --outcome winners`,
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

			var groups []breakdown.GroupStat
			var label string
			switch args[0] {
			case "symbol":
				groups, label = breakdown.BySymbol(filtered), "Symbol"
			case "tag":
				groups, label = breakdown.ByTag(filtered), "Tag"
			case "day":
				groups, label = breakdown.ByDayOfWeek(filtered), "Day"
			case "hour":
				groups, label = breakdown.ByHour(filtered), "Hour"
			case "month":
				groups, label = breakdown.ByMonth(filtered), "Month"
			case "session":
				groups, label = breakdown.BySession(filtered), "Session"
			}

			if output.IsJSON() {
				return output.JSON(groups)
			}

			if len(groups) == 0 {
				output.Info("No trades match the current filters.")
				return nil
			}

			table := NewTable(output, label, "Trades", "Wins", "Losses", "Win %", "P&L", "Avg P&L")
			for _, g := range groups {
				table.AddRow(
					g.Key,
					fmt.Sprintf("%d", g.Trades),
					fmt.Sprintf("%d", g.Wins),
					fmt.Sprintf("%d", g.Losses),
					fmt.Sprintf("%.0f%%", g.WinRate),
					output.FormatPnL(g.PnL),
					output.FormatPnL(g.AvgPnL),
				)
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)

	return cmd
}

func newHeatmapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show a daily P&L calendar",
		Long: `Render the trailing 13 weeks of daily P&L as a calendar grid.
The grid always covers the whole journal, ignoring filters. Green marks
profitable days, red losing days, dots days without trades.`,
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
			days := breakdown.CalendarHeatmap(trades, time.Now())

			if output.IsJSON() {
				return output.JSON(days)
			}

			renderHeatmap(output, days)
			return nil
		},
	}

	return cmd
}

// renderHeatmap prints the calendar grid one weekday row at a time,
// weeks running left to right.
func renderHeatmap(output *Output, days []breakdown.CalendarDay) {
	if len(days) == 0 {
		output.Info("No calendar data.")
		return
	}

	weeks := days[len(days)-1].Week + 1
	byWeekday := make(map[int][]breakdown.CalendarDay)
	for _, d := range days {
		// time.Weekday counts from Sunday; rows run Monday first.
		wd := (int(d.Weekday) + 6) % 7
		byWeekday[wd] = append(byWeekday[wd], d)
	}

	output.Bold("Daily P&L — last %d weeks", weeks)
	labels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for wd, labelName := range labels {
		row := labelName + "  "
		cells := make(map[int]breakdown.CalendarDay)
		for _, d := range byWeekday[wd] {
			cells[d.Week] = d
		}
		for w := 0; w < weeks; w++ {
			d, ok := cells[w]
			switch {
			case !ok:
				row += "  "
			case d.PnL > 0:
				row += output.Green("■") + " "
			case d.PnL < 0:
				row += output.Red("■") + " "
			default:
				row += output.DimText("·") + " "
			}
		}
		output.Println(row)
	}

	var total float64
	var traded int
	for _, d := range days {
		if d.PnL != 0 {
			traded++
		}
		total += d.PnL
	}
	output.Println()
	output.Printf("  %d trading days, net %s\n", traded, output.FormatPnL(total))
}

func newCurveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Show the equity curve",
		Long: `Print the cumulative P&L series in trade order, with running
drawdown and win rate. Add --rolling for the rolling win-rate series.`,
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

			rolling, _ := cmd.Flags().GetBool("rolling")
			if rolling {
				return renderRolling(output, filtered)
			}

			points := breakdown.EquityCurve(filtered)
			if output.IsJSON() {
				return output.JSON(points)
			}
			if len(points) == 0 {
				output.Info("No trades match the current filters.")
				return nil
			}

			table := NewTable(output, "#", "Date", "Equity", "Drawdown", "Win %")
			for _, p := range points {
				table.AddRow(
					fmt.Sprintf("%d", p.Index),
					p.Date,
					output.FormatPnL(p.CumulativePnL),
					FormatCurrency(p.Drawdown),
					fmt.Sprintf("%.0f%%", p.WinRate),
				)
			}
			table.Render()
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().Bool("rolling", false, "show the rolling win-rate series instead")

	return cmd
}

func renderRolling(output *Output, trades []models.Trade) error {
	points := breakdown.RollingWinRate(trades)
	if output.IsJSON() {
		return output.JSON(points)
	}
	if len(points) == 0 {
		output.Info("Not enough trades for a rolling window.")
		return nil
	}

	table := NewTable(output, "#", "Date", "Rolling Win %")
	for i, p := range points {
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			p.Date,
			fmt.Sprintf("%.0f%%", p.WinRate),
		)
	}
	table.Render()
	return nil
}
