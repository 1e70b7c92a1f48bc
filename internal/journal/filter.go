package journal

import (
	"strings"
	"time"

	"trading-journal/internal/models"
)

// Outcome selects trades by result or direction.
type Outcome string

const (
	OutcomeAll     Outcome = "all"
	OutcomeWinners Outcome = "winners"
	OutcomeLosers  Outcome = "losers"
	OutcomeLong    Outcome = "long"
	OutcomeShort   Outcome = "short"
)

// DateRange selects trades by calendar window.
type DateRange string

const (
	RangeAll    DateRange = "all"
	RangeLast7  DateRange = "7days"
	RangeLast30 DateRange = "30days"
	RangeLast90 DateRange = "90days"
	RangeCustom DateRange = "custom"
)

// FilterState describes the active filter dimensions. All dimensions
// compose by logical AND; the zero value matches everything.
type FilterState struct {
	Outcome Outcome
	Tags    []string
	Range   DateRange
	// CustomStart and CustomEnd bound an inclusive interval in
	// YYYY-MM-DD form. When Range is custom and either bound is
	// missing, no date filtering is applied.
	CustomStart string
	CustomEnd   string
	Search      string
}

// ApplyFilters returns the trades matching the filter state, preserving
// input order. "Last N days" ranges are measured back from the current
// moment.
func ApplyFilters(trades []models.Trade, f FilterState) []models.Trade {
	return ApplyFiltersAt(trades, f, time.Now())
}

// ApplyFiltersAt is ApplyFilters with an explicit reference time for the
// relative date ranges. Stages run search, outcome, tags, then date range;
// each stage is an independent predicate so the order does not change the
// result.
func ApplyFiltersAt(trades []models.Trade, f FilterState, now time.Time) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if matchesSearch(t, f.Search) &&
			matchesOutcome(t, f.Outcome) &&
			matchesTags(t, f.Tags) &&
			matchesRange(t, f, now) {
			out = append(out, t)
		}
	}
	return out
}

func matchesOutcome(t models.Trade, o Outcome) bool {
	switch o {
	case OutcomeWinners:
		return t.PnL > 0
	case OutcomeLosers:
		return t.PnL < 0
	case OutcomeLong:
		return t.Side == models.SideLong
	case OutcomeShort:
		return t.Side == models.SideShort
	default:
		return true
	}
}

// matchesTags passes when the trade's tag set intersects the selected
// set. An empty selection means no tag filtering.
func matchesTags(t models.Trade, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range selected {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

// matchesSearch does a case-insensitive substring match against symbol,
// notes, and tags. Any hit passes.
func matchesSearch(t models.Trade, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Symbol), q) ||
		strings.Contains(strings.ToLower(t.TradeNotes), q) ||
		strings.Contains(strings.ToLower(t.Notes), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesRange(t models.Trade, f FilterState, now time.Time) bool {
	switch f.Range {
	case RangeLast7:
		return onOrAfter(t, daysAgo(now, 7))
	case RangeLast30:
		return onOrAfter(t, daysAgo(now, 30))
	case RangeLast90:
		return onOrAfter(t, daysAgo(now, 90))
	case RangeCustom:
		// The custom range composes with the other filter stages like
		// any other range; with a missing bound it filters nothing.
		if f.CustomStart == "" || f.CustomEnd == "" {
			return true
		}
		start, err1 := time.Parse(models.DateLayout, f.CustomStart)
		end, err2 := time.Parse(models.DateLayout, f.CustomEnd)
		if err1 != nil || err2 != nil {
			return true
		}
		d, ok := t.ParsedDate()
		return ok && !d.Before(start) && !d.After(end)
	default:
		return true
	}
}

func onOrAfter(t models.Trade, start time.Time) bool {
	d, ok := t.ParsedDate()
	return ok && !d.Before(start)
}

func daysAgo(now time.Time, n int) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, -n)
}
