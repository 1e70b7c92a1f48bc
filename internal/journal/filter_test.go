package journal

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"trading-journal/internal/models"
)

var filterNow = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func filterTrades() []models.Trade {
	return []models.Trade{
		{ID: "a", Date: "2024-03-14", Symbol: "AAPL", Side: models.SideLong, PnL: 100, Tags: []string{"Breakout"}},
		{ID: "b", Date: "2024-03-10", Symbol: "TSLA", Side: models.SideShort, PnL: -50, Tags: []string{"Scalp"}},
		{ID: "c", Date: "2024-01-05", Symbol: "AAPL", Side: models.SideLong, PnL: -20, TradeNotes: "chased the move"},
		{ID: "d", Date: "2023-11-01", Symbol: "SPY", Side: models.SideShort, PnL: 75, Tags: []string{"Breakout", "Swing"}},
		{ID: "e", Date: "", Symbol: "NVDA", Side: models.SideLong, PnL: 10},
	}
}

func ids(trades []models.Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.ID
	}
	return out
}

func TestFilterZeroValueMatchesAll(t *testing.T) {
	got := ApplyFiltersAt(filterTrades(), FilterState{}, filterNow)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(got))
}

func TestFilterOutcome(t *testing.T) {
	trades := filterTrades()

	assert.Equal(t, []string{"a", "d", "e"}, ids(ApplyFiltersAt(trades, FilterState{Outcome: OutcomeWinners}, filterNow)))
	assert.Equal(t, []string{"b", "c"}, ids(ApplyFiltersAt(trades, FilterState{Outcome: OutcomeLosers}, filterNow)))
	assert.Equal(t, []string{"a", "c", "e"}, ids(ApplyFiltersAt(trades, FilterState{Outcome: OutcomeLong}, filterNow)))
	assert.Equal(t, []string{"b", "d"}, ids(ApplyFiltersAt(trades, FilterState{Outcome: OutcomeShort}, filterNow)))
}

func TestFilterTagsMatchAny(t *testing.T) {
	got := ApplyFiltersAt(filterTrades(), FilterState{Tags: []string{"Breakout", "Scalp"}}, filterNow)
	assert.Equal(t, []string{"a", "b", "d"}, ids(got))
}

func TestFilterSearchCoversSymbolNotesTags(t *testing.T) {
	trades := filterTrades()

	assert.Equal(t, []string{"a", "c"}, ids(ApplyFiltersAt(trades, FilterState{Search: "aapl"}, filterNow)))
	assert.Equal(t, []string{"c"}, ids(ApplyFiltersAt(trades, FilterState{Search: "chased"}, filterNow)))
	assert.Equal(t, []string{"b"}, ids(ApplyFiltersAt(trades, FilterState{Search: "scal"}, filterNow)))
}

func TestFilterRelativeRangeExcludesUndated(t *testing.T) {
	got := ApplyFiltersAt(filterTrades(), FilterState{Range: RangeLast7}, filterNow)
	assert.Equal(t, []string{"a", "b"}, ids(got))

	got = ApplyFiltersAt(filterTrades(), FilterState{Range: RangeLast90}, filterNow)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestFilterCustomRangeInclusive(t *testing.T) {
	f := FilterState{Range: RangeCustom, CustomStart: "2024-03-10", CustomEnd: "2024-03-14"}
	got := ApplyFiltersAt(filterTrades(), f, filterNow)
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestFilterCustomRangeMissingBoundFiltersNothing(t *testing.T) {
	f := FilterState{Range: RangeCustom, CustomStart: "2024-03-10"}
	got := ApplyFiltersAt(filterTrades(), f, filterNow)
	assert.Len(t, got, len(filterTrades()))
}

func TestFilterStagesCompose(t *testing.T) {
	f := FilterState{
		Outcome: OutcomeWinners,
		Tags:    []string{"Breakout"},
		Range:   RangeLast30,
	}
	got := ApplyFiltersAt(filterTrades(), f, filterNow)
	assert.Equal(t, []string{"a"}, ids(got))
}

// Filtering is a pure selection: applying the same filter twice yields
// the same result, and the output is never larger than the input.
func TestFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genTrades := gen.SliceOf(gen.IntRange(0, 365).Map(func(offset int) models.Trade {
		date := filterNow.AddDate(0, 0, -offset)
		return models.Trade{
			ID:     fmt.Sprintf("t%d", offset),
			Date:   date.Format(models.DateLayout),
			Symbol: "AAPL",
			PnL:    float64(offset%7) - 3,
			Side:   models.SideLong,
		}
	}))

	outcomes := gen.OneConstOf(OutcomeAll, OutcomeWinners, OutcomeLosers, OutcomeLong, OutcomeShort)
	ranges := gen.OneConstOf(RangeAll, RangeLast7, RangeLast30, RangeLast90)

	properties.Property("idempotent", prop.ForAll(
		func(trades []models.Trade, outcome Outcome, dateRange DateRange) bool {
			f := FilterState{Outcome: outcome, Range: dateRange}
			once := ApplyFiltersAt(trades, f, filterNow)
			twice := ApplyFiltersAt(once, f, filterNow)
			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i].ID != twice[i].ID {
					return false
				}
			}
			return true
		},
		genTrades, outcomes, ranges,
	))

	properties.Property("never grows", prop.ForAll(
		func(trades []models.Trade, outcome Outcome, dateRange DateRange) bool {
			f := FilterState{Outcome: outcome, Range: dateRange}
			return len(ApplyFiltersAt(trades, f, filterNow)) <= len(trades)
		},
		genTrades, outcomes, ranges,
	))

	properties.TestingRun(t)
}
