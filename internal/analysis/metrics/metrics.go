// Package metrics computes aggregate performance statistics over a trade
// collection. Every function is pure and defines explicit zero-value
// results for empty input and zero denominators; nothing here returns NaN
// or panics.
package metrics

import (
	"math"
	"sort"

	"trading-journal/internal/models"
)

// Flat notional-risk assumption used for R-multiples: 2% of position
// value stands in for the trade's actual stop distance.
const riskFraction = 0.02

// Annualization factor for the simplified Sharpe ratio (trading days).
const tradingDaysPerYear = 252

// Summary holds the aggregate statistics for a trade set.
type Summary struct {
	TotalTrades        int
	WinningTrades      int
	LosingTrades       int
	WinRate            float64 // percent
	TotalPnL           float64
	AverageWin         float64
	AverageLoss        float64 // positive magnitude
	ProfitFactor       float64
	LargestWin         float64
	LargestLoss        float64
	MaxDrawdown        float64
	MaxDrawdownPercent float64
	Expectancy         float64
	WinStreak          int
	LoseStreak         int
	// CurrentStreak is the streak still running at the end of the
	// chronological sequence: positive for wins, negative for losses.
	CurrentStreak int
	AvgRMultiple  float64
	SharpeRatio   float64
	KellyPercent  float64
}

// Compute derives the full summary for the given trades. Empty input
// yields the zero summary.
func Compute(trades []models.Trade) Summary {
	if len(trades) == 0 {
		return Summary{}
	}

	var s Summary
	s.TotalTrades = len(trades)

	var totalWins, totalLosses float64
	for _, t := range trades {
		s.TotalPnL += t.PnL
		switch {
		case t.PnL > 0:
			s.WinningTrades++
			totalWins += t.PnL
			if t.PnL > s.LargestWin {
				s.LargestWin = t.PnL
			}
		case t.PnL < 0:
			s.LosingTrades++
			totalLosses += -t.PnL
			if t.PnL < s.LargestLoss {
				s.LargestLoss = t.PnL
			}
		}
	}

	winFrac := float64(s.WinningTrades) / float64(s.TotalTrades)
	s.WinRate = winFrac * 100
	if s.WinningTrades > 0 {
		s.AverageWin = totalWins / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AverageLoss = totalLosses / float64(s.LosingTrades)
	}

	// With no losing trades the profit factor is the raw gross profit,
	// not infinity.
	if totalLosses > 0 {
		s.ProfitFactor = totalWins / totalLosses
	} else {
		s.ProfitFactor = totalWins
	}

	s.Expectancy = winFrac*s.AverageWin - (1-winFrac)*s.AverageLoss

	ordered := Chronological(trades)
	s.MaxDrawdown, s.MaxDrawdownPercent = maxDrawdown(ordered)
	s.WinStreak, s.LoseStreak, s.CurrentStreak = streaks(ordered)

	s.AvgRMultiple = avgRMultiple(trades)
	s.SharpeRatio = sharpe(trades)
	s.KellyPercent = kelly(winFrac, s.AverageWin, s.AverageLoss)

	return s
}

// Chronological returns the trades with parseable dates sorted by date
// ascending. The sort is stable so same-day trades keep input order.
func Chronological(trades []models.Trade) []models.Trade {
	type dated struct {
		trade models.Trade
		date  int64
	}
	ordered := make([]dated, 0, len(trades))
	for _, t := range trades {
		if d, ok := t.ParsedDate(); ok {
			ordered = append(ordered, dated{t, d.Unix()})
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].date < ordered[j].date
	})

	out := make([]models.Trade, len(ordered))
	for i, d := range ordered {
		out[i] = d.trade
	}
	return out
}

// streaks scans chronologically for the longest win and loss runs and the
// run still active at the end. Break-even trades are skipped, breaking
// neither accumulation.
func streaks(ordered []models.Trade) (win, lose, current int) {
	streak := 0
	for _, t := range ordered {
		switch {
		case t.PnL > 0:
			if streak > 0 {
				streak++
			} else {
				streak = 1
			}
			if streak > win {
				win = streak
			}
		case t.PnL < 0:
			if streak < 0 {
				streak--
			} else {
				streak = -1
			}
			if -streak > lose {
				lose = -streak
			}
		}
	}
	return win, lose, streak
}

// avgRMultiple averages pnl over the assumed risk amount across trades
// with nonzero pnl and a positive position value.
func avgRMultiple(trades []models.Trade) float64 {
	var sum float64
	var n int
	for _, t := range trades {
		risk := t.PositionValue() * riskFraction
		if t.PnL == 0 || risk <= 0 {
			continue
		}
		sum += t.PnL / risk
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// sharpe is the simplified annualized Sharpe ratio: mean per-trade pnl
// over its population standard deviation, scaled by sqrt(252).
func sharpe(trades []models.Trade) float64 {
	n := float64(len(trades))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, t := range trades {
		sum += t.PnL
	}
	mean := sum / n

	var variance float64
	for _, t := range trades {
		variance += (t.PnL - mean) * (t.PnL - mean)
	}
	variance /= n
	if variance == 0 {
		return 0
	}
	return mean / math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
}

// kelly computes the Kelly criterion percentage from the win fraction and
// the average payoff ratio, clamped to [0, 25] for display safety.
func kelly(winFrac, avgWin, avgLoss float64) float64 {
	if avgLoss == 0 || avgWin == 0 {
		return 0
	}
	b := avgWin / avgLoss
	pct := ((b*winFrac - (1 - winFrac)) / b) * 100
	if pct < 0 {
		return 0
	}
	if pct > 25 {
		return 25
	}
	return pct
}
