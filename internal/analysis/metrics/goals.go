package metrics

import (
	"time"

	"trading-journal/internal/models"
)

// GoalStatus reports today's activity against the daily-goal thresholds.
type GoalStatus struct {
	Trades       int
	PnL          float64
	MaxLossHit   bool
	TargetHit    bool
	MaxTradesHit bool
}

// CheckDailyGoals evaluates the goals against the trades dated today.
// Pass the full, unfiltered collection: goal checks ignore the active
// filter state.
func CheckDailyGoals(trades []models.Trade, goals models.DailyGoals) GoalStatus {
	return CheckDailyGoalsOn(trades, goals, time.Now().Format(models.DateLayout))
}

// CheckDailyGoalsOn is CheckDailyGoals with an explicit calendar date.
func CheckDailyGoalsOn(trades []models.Trade, goals models.DailyGoals, date string) GoalStatus {
	var status GoalStatus
	for _, t := range trades {
		if t.Date != date {
			continue
		}
		status.Trades++
		status.PnL += t.PnL
	}
	status.MaxLossHit = status.PnL <= -goals.MaxLoss
	status.TargetHit = status.PnL >= goals.TargetProfit
	status.MaxTradesHit = status.Trades >= goals.MaxTrades
	return status
}
