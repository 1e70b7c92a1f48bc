package metrics

import (
	"sort"

	"trading-journal/internal/models"
)

// How many drawdown periods to retain for reporting.
const maxDrawdownPeriods = 5

// DrawdownPeriod is a span during which cumulative pnl sat below its
// running peak.
type DrawdownPeriod struct {
	Start        string
	End          string
	Depth        float64
	DepthPercent float64
	// Current marks a drawdown still open at the end of the series.
	Current bool
}

// maxDrawdown walks the chronological sequence tracking cumulative pnl
// against its running peak. The percent form is relative to the final
// running peak, zero when the peak never rose above zero.
func maxDrawdown(ordered []models.Trade) (depth, percent float64) {
	var peak, cumulative float64
	for _, t := range ordered {
		cumulative += t.PnL
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > depth {
			depth = dd
		}
	}
	if peak > 0 {
		percent = depth / peak * 100
	}
	return depth, percent
}

// DrawdownPeriods extracts the individual below-peak segments from the
// trades, deepest first, keeping the top five. A segment that never
// recovers by the end of the series is flagged current.
func DrawdownPeriods(trades []models.Trade) []DrawdownPeriod {
	ordered := Chronological(trades)

	var periods []DrawdownPeriod
	var peak, cumulative, peakAtStart float64
	var open *DrawdownPeriod

	for _, t := range ordered {
		cumulative += t.PnL
		if cumulative >= peak {
			peak = cumulative
			if open != nil {
				open.End = t.Date
				periods = append(periods, *open)
				open = nil
			}
			continue
		}
		if open == nil {
			open = &DrawdownPeriod{Start: t.Date}
			peakAtStart = peak
		}
		if depth := peak - cumulative; depth > open.Depth {
			open.Depth = depth
			if peakAtStart > 0 {
				open.DepthPercent = depth / peakAtStart * 100
			}
		}
		open.End = t.Date
	}
	if open != nil {
		open.Current = true
		periods = append(periods, *open)
	}

	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Depth > periods[j].Depth
	})
	if len(periods) > maxDrawdownPeriods {
		periods = periods[:maxDrawdownPeriods]
	}
	return periods
}
