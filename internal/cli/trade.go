package cli

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/errors"
	"trading-journal/internal/journal"
	"trading-journal/internal/logging"
	"trading-journal/internal/models"
)

// addTradeCommands adds trade management commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade management",
		Long:  "Add, list, edit, tag, and delete journal trades.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))
	cmd.AddCommand(newTradeEditCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))
	cmd.AddCommand(newTradeTagCmd(app))
	cmd.AddCommand(newTradeClearCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <symbol>",
		Short: "Record a trade manually",
		Long: `Record a single completed trade.

P&L is always derived from side, prices, quantity, and fees.`,
		Example: `  journal trade add AAPL --side long --qty 100 --entry 150 --exit 152
  journal trade add TSLA --side short --qty 50 --entry 240 --exit 235 --tags Scalp --notes "faded the open"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			timeOfDay, _ := cmd.Flags().GetString("time")
			side, _ := cmd.Flags().GetString("side")
			qty, _ := cmd.Flags().GetFloat64("qty")
			entry, _ := cmd.Flags().GetFloat64("entry")
			exit, _ := cmd.Flags().GetFloat64("exit")
			fees, _ := cmd.Flags().GetFloat64("fees")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			notes, _ := cmd.Flags().GetString("notes")

			if date == "" {
				date = time.Now().Format(models.DateLayout)
			}
			if qty <= 0 {
				return errors.NewValidationError("qty", qty, "quantity must be positive")
			}
			normalizedSide := models.NormalizeSide(side)
			if normalizedSide == models.SideUnknown {
				return errors.NewValidationError("side", side, "must be long or short")
			}

			trade := journal.NewManualTrade(journal.ManualEntry{
				Date:       date,
				Time:       timeOfDay,
				Symbol:     args[0],
				Side:       normalizedSide,
				Quantity:   qty,
				EntryPrice: entry,
				ExitPrice:  exit,
				Fees:       fees,
				Tags:       tags,
				TradeNotes: notes,
			})

			if app.Store == nil {
				return errors.ErrDatabase
			}
			if err := app.Store.SaveTrades(ctx, []models.Trade{trade}); err != nil {
				return err
			}

			logger := logging.WithSymbol(logging.FromContext(ctx), trade.Symbol)
			logging.LogTrade(logger, trade.ID, trade.Symbol, string(trade.Side), trade.PnL)

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Recorded %s %s: %s", FormatSide(trade.Side), trade.Symbol, output.FormatPnL(trade.PnL))
			checkGoalsAfterTrade(ctx, output, app)
			return nil
		},
	}

	cmd.Flags().String("date", "", "trade date (YYYY-MM-DD, default today)")
	cmd.Flags().String("time", "", "trade time (HH:MM)")
	cmd.Flags().String("side", "long", "trade side (long, short)")
	cmd.Flags().Float64("qty", 0, "quantity")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().Float64("fees", 0, "fees and commissions")
	cmd.Flags().StringSlice("tags", nil, "strategy tags")
	cmd.Flags().String("notes", "", "trade notes")

	return cmd
}

// checkGoalsAfterTrade warns when recording a trade crosses a daily-goal
// threshold.
func checkGoalsAfterTrade(ctx context.Context, output *Output, app *App) {
	trades, err := app.Store.GetTrades(ctx)
	if err != nil {
		return
	}
	goals := goalsFor(ctx, app)
	status := checkGoals(trades, goals)
	if status.MaxLossHit {
		logging.LogGoalBreach(logging.FromContext(ctx), "max_loss", status.PnL)
		output.Warning("⚠ Daily max loss hit: %s", FormatPnL(status.PnL))
	}
	if status.MaxTradesHit {
		logging.LogGoalBreach(logging.FromContext(ctx), "max_trades", float64(status.Trades))
		output.Warning("⚠ Daily trade limit reached: %d trades", status.Trades)
	}
	if status.TargetHit {
		output.Success("✓ Daily profit target reached: %s", FormatPnL(status.PnL))
	}
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		Long:  "List journal trades, honoring the active filters.",
		Example: `  journal trade list --range 7days
  journal trade list --outcome losers --tags Scalp
  journal trade list --sort pnl --limit 20`,
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

			sortKey, _ := cmd.Flags().GetString("sort")
			sortTrades(filtered, sortKey)

			limit, _ := cmd.Flags().GetInt("limit")
			if limit > 0 && len(filtered) > limit {
				filtered = filtered[:limit]
			}

			if output.IsJSON() {
				return output.JSON(filtered)
			}

			if len(filtered) == 0 {
				output.Info("No trades match the current filters.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Time", "Symbol", "Side", "Qty", "Entry", "Exit", "P&L", "Tags")
			for _, t := range filtered {
				table.AddRow(
					TruncateString(t.ID, 14),
					t.Date,
					t.Time,
					t.Symbol,
					FormatSide(t.Side),
					FormatQuantity(t.Quantity),
					FormatPrice(t.EntryPrice),
					FormatPrice(t.ExitPrice),
					output.FormatPnL(t.PnL),
					TruncateString(strings.Join(t.Tags, ";"), 24),
				)
			}
			table.Render()
			output.Println()
			output.Dim("%d trades", len(filtered))
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().String("sort", "date", "sort key (date, pnl, symbol)")
	cmd.Flags().Int("limit", 0, "limit the number of rows (0 = all)")

	return cmd
}

// sortTrades orders trades in place by the given key. Date sorting is
// newest first; P&L sorting is largest first.
func sortTrades(trades []models.Trade, key string) {
	switch key {
	case "pnl":
		sort.SliceStable(trades, func(i, j int) bool {
			return trades[i].PnL > trades[j].PnL
		})
	case "symbol":
		sort.SliceStable(trades, func(i, j int) bool {
			return trades[i].Symbol < trades[j].Symbol
		})
	default:
		sort.SliceStable(trades, func(i, j int) bool {
			if trades[i].Date != trades[j].Date {
				return trades[i].Date > trades[j].Date
			}
			return trades[i].Time > trades[j].Time
		})
	}
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a single trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			if app.Store == nil {
				return errors.ErrDatabase
			}
			trade, err := app.Store.GetTradeByID(ctx, args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			output.Bold("Trade %s", trade.ID)
			output.Printf("  Date:       %s %s\n", FormatDate(trade.Date), trade.Time)
			output.Printf("  Symbol:     %s\n", trade.Symbol)
			output.Printf("  Side:       %s\n", FormatSide(trade.Side))
			output.Printf("  Quantity:   %s\n", FormatQuantity(trade.Quantity))
			output.Printf("  Entry:      %s\n", FormatCurrency(trade.EntryPrice))
			output.Printf("  Exit:       %s\n", FormatCurrency(trade.ExitPrice))
			output.Printf("  Fees:       %s\n", FormatCurrency(trade.Fees))
			output.Printf("  P&L:        %s\n", output.FormatPnL(trade.PnL))
			if len(trade.Tags) > 0 {
				output.Printf("  Tags:       %s\n", strings.Join(trade.Tags, ", "))
			}
			if trade.TradeNotes != "" {
				output.Printf("  Notes:      %s\n", trade.TradeNotes)
			}
			if trade.Notes != "" {
				output.Printf("  Journal:    %s\n", trade.Notes)
			}
			if len(trade.Screenshots) > 0 {
				output.Printf("  Screenshots: %d attached\n", len(trade.Screenshots))
			}
			return nil
		},
	}
}

func newTradeEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <trade-id>",
		Short: "Edit a trade",
		Long: `Overwrite fields of an existing trade. The record is replaced
wholesale; P&L is re-derived when prices, quantity, side, or fees change.`,
		Example: `  journal trade edit manual_01ABC --exit 153.20
  journal trade edit trade_1700000000000_0 --tags Breakout;Swing --notes "held too long"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			if app.Store == nil {
				return errors.ErrDatabase
			}
			trade, err := app.Store.GetTradeByID(ctx, args[0])
			if err != nil {
				return err
			}

			updated := trade.Clone()
			repriced := false

			if cmd.Flags().Changed("date") {
				updated.Date, _ = cmd.Flags().GetString("date")
			}
			if cmd.Flags().Changed("time") {
				updated.Time, _ = cmd.Flags().GetString("time")
			}
			if cmd.Flags().Changed("side") {
				side, _ := cmd.Flags().GetString("side")
				normalized := models.NormalizeSide(side)
				if normalized == models.SideUnknown {
					return errors.NewValidationError("side", side, "must be long or short")
				}
				updated.Side = normalized
				repriced = true
			}
			if cmd.Flags().Changed("qty") {
				updated.Quantity, _ = cmd.Flags().GetFloat64("qty")
				repriced = true
			}
			if cmd.Flags().Changed("entry") {
				updated.EntryPrice, _ = cmd.Flags().GetFloat64("entry")
				repriced = true
			}
			if cmd.Flags().Changed("exit") {
				updated.ExitPrice, _ = cmd.Flags().GetFloat64("exit")
				repriced = true
			}
			if cmd.Flags().Changed("fees") {
				updated.Fees, _ = cmd.Flags().GetFloat64("fees")
				repriced = true
			}
			if cmd.Flags().Changed("tags") {
				tags, _ := cmd.Flags().GetString("tags")
				updated.Tags = nil
				for _, tag := range strings.Split(tags, ";") {
					if trimmed := strings.TrimSpace(tag); trimmed != "" {
						updated.Tags = append(updated.Tags, trimmed)
					}
				}
			}
			if cmd.Flags().Changed("notes") {
				updated.TradeNotes, _ = cmd.Flags().GetString("notes")
			}

			if repriced {
				updated.PnL = journal.DerivePnL(updated.Side, updated.EntryPrice, updated.ExitPrice, updated.Quantity, updated.Fees)
			}

			if err := app.Store.ReplaceTrade(ctx, updated); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(updated)
			}
			output.Success("✓ Updated %s: %s", updated.ID, output.FormatPnL(updated.PnL))
			return nil
		},
	}

	cmd.Flags().String("date", "", "trade date (YYYY-MM-DD)")
	cmd.Flags().String("time", "", "trade time (HH:MM)")
	cmd.Flags().String("side", "", "trade side (long, short)")
	cmd.Flags().Float64("qty", 0, "quantity")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().Float64("fees", 0, "fees and commissions")
	cmd.Flags().String("tags", "", "semicolon-separated tags (replaces existing)")
	cmd.Flags().String("notes", "", "trade notes")

	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <trade-id> [trade-id...]",
		Short: "Delete trades",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			if app.Store == nil {
				return errors.ErrDatabase
			}
			if err := app.Store.DeleteTrades(ctx, args); err != nil {
				return err
			}
			output.Success("✓ Deleted %d trades", len(args))
			return nil
		},
	}
	return cmd
}

func newTradeTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag <tag> <trade-id> [trade-id...]",
		Short: "Apply a tag to trades",
		Long:  "Append a tag to each listed trade. Trades already carrying the tag are left unchanged.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			if app.Store == nil {
				return errors.ErrDatabase
			}
			tag := args[0]
			ids := args[1:]
			if err := app.Store.TagTrades(ctx, ids, tag); err != nil {
				return err
			}
			output.Success("✓ Tagged %d trades with %q", len(ids), tag)
			return nil
		},
	}
	return cmd
}

func newTradeClearCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				output.Warning("This deletes every trade in the journal. Re-run with --yes to confirm.")
				return nil
			}

			if app.Store == nil {
				return errors.ErrDatabase
			}
			if err := app.Store.ClearTrades(ctx); err != nil {
				return err
			}
			output.Success("✓ Journal cleared")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "confirm deletion")
	return cmd
}
