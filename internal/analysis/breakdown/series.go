package breakdown

import (
	"time"

	"trading-journal/internal/analysis/metrics"
	"trading-journal/internal/models"
)

// EquityPoint is one step of the cumulative equity curve.
type EquityPoint struct {
	Index         int // 1-based trade number
	Date          string
	CumulativePnL float64
	Drawdown      float64 // distance below the running peak, >= 0
	WinRate       float64 // running win rate, percent
}

// EquityCurve returns the chronological running pnl with peak-relative
// drawdown and running win rate, one point per dated trade.
func EquityCurve(trades []models.Trade) []EquityPoint {
	ordered := metrics.Chronological(trades)

	points := make([]EquityPoint, 0, len(ordered))
	var cumulative, peak float64
	var wins int
	for i, t := range ordered {
		cumulative += t.PnL
		if cumulative > peak {
			peak = cumulative
		}
		if t.PnL > 0 {
			wins++
		}
		points = append(points, EquityPoint{
			Index:         i + 1,
			Date:          t.Date,
			CumulativePnL: cumulative,
			Drawdown:      peak - cumulative,
			WinRate:       float64(wins) / float64(i+1) * 100,
		})
	}
	return points
}

// WinRatePoint is one window position of the rolling win-rate series.
type WinRatePoint struct {
	Date    string  // right edge of the window
	WinRate float64 // percent
}

// RollingWinRate slides a window of max(10, n/20) trades over the
// chronological sequence, one point per position. The growing window
// smooths out single-trade noise in the trend.
func RollingWinRate(trades []models.Trade) []WinRatePoint {
	ordered := metrics.Chronological(trades)
	n := len(ordered)

	window := n / 20
	if window < 10 {
		window = 10
	}
	if n < window {
		return nil
	}

	points := make([]WinRatePoint, 0, n-window+1)
	wins := 0
	for i, t := range ordered {
		if t.PnL > 0 {
			wins++
		}
		if i >= window {
			if ordered[i-window].PnL > 0 {
				wins--
			}
		}
		if i >= window-1 {
			points = append(points, WinRatePoint{
				Date:    t.Date,
				WinRate: float64(wins) / float64(window) * 100,
			})
		}
	}
	return points
}

// CalendarDay is one cell of the daily-pnl calendar grid.
type CalendarDay struct {
	Date    string
	PnL     float64
	Weekday time.Weekday
	Week    int // floor(offset-from-start / 7), 0..12
}

// Days in the calendar grid: 13 full weeks ending today.
const calendarDays = 91

// CalendarHeatmap aggregates daily pnl over the fixed window ending
// today. Every day of the window is present, zero-filled when no trades
// landed on it. Run it over the full collection, not a filtered view.
func CalendarHeatmap(trades []models.Trade, today time.Time) []CalendarDay {
	daily := make(map[string]float64)
	for _, t := range trades {
		if _, ok := t.ParsedDate(); ok {
			daily[t.Date] += t.PnL
		}
	}

	start := today.AddDate(0, 0, -(calendarDays - 1))
	days := make([]CalendarDay, 0, calendarDays)
	for i := 0; i < calendarDays; i++ {
		d := start.AddDate(0, 0, i)
		date := d.Format(models.DateLayout)
		days = append(days, CalendarDay{
			Date:    date,
			PnL:     daily[date],
			Weekday: d.Weekday(),
			Week:    i / 7,
		})
	}
	return days
}
