package cli

import (
	"github.com/spf13/cobra"

	"trading-journal/internal/journal"
)

// addFilterFlags registers the shared trade-filter flags on a command.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "substring match on symbol, notes, or tags")
	cmd.Flags().String("outcome", "all", "outcome filter (all, winners, losers, long, short)")
	cmd.Flags().StringSlice("tags", nil, "only trades carrying at least one of these tags")
	cmd.Flags().String("range", "all", "date range (all, 7days, 30days, 90days, custom)")
	cmd.Flags().String("from", "", "custom range start (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "custom range end (YYYY-MM-DD)")
}

// filterFromFlags builds a FilterState from the shared filter flags.
func filterFromFlags(cmd *cobra.Command) journal.FilterState {
	search, _ := cmd.Flags().GetString("search")
	outcome, _ := cmd.Flags().GetString("outcome")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	dateRange, _ := cmd.Flags().GetString("range")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	f := journal.FilterState{
		Outcome:     journal.Outcome(outcome),
		Tags:        tags,
		Range:       journal.DateRange(dateRange),
		CustomStart: from,
		CustomEnd:   to,
		Search:      search,
	}
	// A custom bound implies the custom range even when --range is
	// left at its default.
	if f.Range == journal.RangeAll && (from != "" || to != "") {
		f.Range = journal.RangeCustom
	}
	return f
}
