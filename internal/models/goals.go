package models

// DailyGoals holds the per-day risk thresholds checked against today's
// trades. Values are overwritten wholesale on save.
type DailyGoals struct {
	MaxLoss      float64
	TargetProfit float64
	MaxTrades    int
}

// DefaultDailyGoals returns the thresholds used before the user saves any.
func DefaultDailyGoals() DailyGoals {
	return DailyGoals{
		MaxLoss:      500,
		TargetProfit: 1000,
		MaxTrades:    10,
	}
}

// DefaultAvailableTags returns the starter set of strategy tags.
func DefaultAvailableTags() []string {
	return []string{"Breakout", "Reversal", "Trend Following", "Scalp", "Swing", "News"}
}
