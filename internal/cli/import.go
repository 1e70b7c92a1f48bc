package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"trading-journal/internal/errors"
	"trading-journal/internal/journal"
	"trading-journal/internal/logging"
)

const storeTimeout = 30 * time.Second

// addImportExportCommands adds CSV import and export commands.
func addImportExportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newImportCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a broker CSV export",
		Long: `Import trade history from a CSV file.

Column headers are matched tolerantly: common broker variants such as
trade_id, BoughtTimestamp, or ticker are recognized. Trades whose id
already exists in the journal are skipped as duplicates.`,
		Example: `  journal import trades.csv
  journal import ~/Downloads/broker-export.csv --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
			defer cancel()

			path := args[0]
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			raw, err := os.ReadFile(path)
			if err != nil {
				return errors.NewImportError(path, "cannot read file", err)
			}

			parsed := journal.Normalize(string(raw))
			if len(parsed) == 0 {
				output.Warning("No trades found in %s", path)
				return errors.NewImportError(path, "no parseable trade rows", errors.ErrEmptyImport)
			}

			if app.Store == nil {
				return errors.ErrDatabase
			}
			existing, err := app.Store.GetTrades(ctx)
			if err != nil {
				return err
			}

			result := journal.Dedupe(existing, parsed)

			if dryRun {
				output.Bold("Import preview: %s", path)
				output.Printf("  Parsed:     %d trades\n", len(parsed))
				output.Printf("  New:        %d\n", len(result.ToAdd))
				output.Printf("  Duplicates: %d\n", result.DuplicateCount)
				return nil
			}

			if err := app.Store.SaveTrades(ctx, result.ToAdd); err != nil {
				return err
			}

			logging.LogImport(logging.FromContext(ctx), path, len(parsed), len(result.ToAdd), result.DuplicateCount)

			if output.IsJSON() {
				return output.JSON(map[string]int{
					"parsed":     len(parsed),
					"added":      len(result.ToAdd),
					"duplicates": result.DuplicateCount,
				})
			}
			output.Success("✓ Imported %d trades (%d duplicates skipped)", len(result.ToAdd), result.DuplicateCount)
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "parse and report without saving")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file.csv]",
		Short: "Export trades to CSV",
		Long: `Export the journal to a CSV file, honoring the active filters.
Writes to stdout when no file is given.`,
		Example: `  journal export trades.csv
  journal export winners.csv --outcome winners --range 30days`,
		Args: cobra.MaximumNArgs(1),
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

			csv, err := journal.ExportCSV(filtered)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				output.Print("%s", csv)
				return nil
			}

			path := args[0]
			if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
				return errors.Wrapf(err, "writing %s", path)
			}

			logging.LogExport(logging.FromContext(ctx), path, len(filtered))
			output.Success("✓ Exported %d trades to %s", len(filtered), path)
			return nil
		},
	}

	addFilterFlags(cmd)

	return cmd
}
