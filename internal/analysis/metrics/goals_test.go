package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trading-journal/internal/models"
)

func TestCheckDailyGoalsOn(t *testing.T) {
	goals := models.DailyGoals{MaxLoss: 500, TargetProfit: 1000, MaxTrades: 10}
	trades := []models.Trade{
		{ID: "a", Date: "2024-03-15", PnL: -300},
		{ID: "b", Date: "2024-03-15", PnL: -250},
		{ID: "c", Date: "2024-03-14", PnL: -900}, // yesterday, ignored
	}

	status := CheckDailyGoalsOn(trades, goals, "2024-03-15")

	assert.Equal(t, 2, status.Trades)
	assert.Equal(t, -550.0, status.PnL)
	assert.True(t, status.MaxLossHit)
	assert.False(t, status.TargetHit)
	assert.False(t, status.MaxTradesHit)
}

func TestCheckDailyGoalsTarget(t *testing.T) {
	goals := models.DefaultDailyGoals()
	trades := []models.Trade{
		{ID: "a", Date: "2024-03-15", PnL: 600},
		{ID: "b", Date: "2024-03-15", PnL: 400},
	}

	status := CheckDailyGoalsOn(trades, goals, "2024-03-15")
	assert.True(t, status.TargetHit)
	assert.False(t, status.MaxLossHit)
}

func TestCheckDailyGoalsMaxTradesBoundary(t *testing.T) {
	goals := models.DailyGoals{MaxLoss: 500, TargetProfit: 1000, MaxTrades: 2}
	trades := []models.Trade{
		{ID: "a", Date: "2024-03-15", PnL: 1},
		{ID: "b", Date: "2024-03-15", PnL: 1},
	}

	status := CheckDailyGoalsOn(trades, goals, "2024-03-15")
	assert.True(t, status.MaxTradesHit)

	status = CheckDailyGoalsOn(trades[:1], goals, "2024-03-15")
	assert.False(t, status.MaxTradesHit)
}

func TestSizingPerSymbol(t *testing.T) {
	trades := []models.Trade{
		{ID: "a", Date: "2024-03-11", Symbol: "AAPL", EntryPrice: 100, Quantity: 10}, // 1000
		{ID: "b", Date: "2024-03-12", Symbol: "AAPL", EntryPrice: 100, Quantity: 30}, // 3000
		{ID: "c", Date: "2024-03-13", Symbol: "TSLA", EntryPrice: 200, Quantity: 10}, // 2000
	}

	sizing := Sizing(trades)

	assert.Equal(t, 2000.0, sizing.Average)
	assert.Equal(t, 1000.0, sizing.Min)
	assert.Equal(t, 3000.0, sizing.Max)

	assert.Len(t, sizing.BySymbol, 2)
	assert.Equal(t, "AAPL", sizing.BySymbol[0].Symbol)
	assert.Equal(t, 2000.0, sizing.BySymbol[0].Average)
	assert.Equal(t, "TSLA", sizing.BySymbol[1].Symbol)
	assert.Equal(t, 2000.0, sizing.BySymbol[1].Average)
}

func TestSizingEmpty(t *testing.T) {
	assert.Equal(t, PositionSizing{}, Sizing(nil))
}
