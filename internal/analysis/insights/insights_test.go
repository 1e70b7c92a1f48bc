package insights

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-journal/internal/models"
)

func TestGenerateEmptyInput(t *testing.T) {
	assert.Nil(t, Generate(nil))
}

func TestBestSymbolNeedsThreeTrades(t *testing.T) {
	// Two profitable AAPL trades: below the minimum, nothing fires.
	trades := []models.Trade{
		{ID: "1", Date: "2024-03-11", Symbol: "AAPL", PnL: 100},
		{ID: "2", Date: "2024-03-12", Symbol: "AAPL", PnL: 100},
	}
	assert.Empty(t, Generate(trades))

	trades = append(trades, models.Trade{ID: "3", Date: "2024-03-13", Symbol: "AAPL", PnL: 100})
	found := Generate(trades)
	require.NotEmpty(t, found)
	assert.Equal(t, SeveritySuccess, found[0].Severity)
	assert.Contains(t, found[0].Title, "AAPL")
}

func TestWorstSymbolNeedsRealLoss(t *testing.T) {
	// Three losers totalling -90: above the -100 threshold, silent.
	trades := []models.Trade{
		{ID: "1", Date: "2024-03-11", Symbol: "TSLA", PnL: -30},
		{ID: "2", Date: "2024-03-12", Symbol: "TSLA", PnL: -30},
		{ID: "3", Date: "2024-03-13", Symbol: "TSLA", PnL: -30},
	}
	for _, in := range Generate(trades) {
		assert.NotContains(t, in.Title, "costing")
	}

	trades[0].PnL = -60 // total now -120
	found := Generate(trades)
	var hit bool
	for _, in := range found {
		if in.Severity == SeverityWarning && in.Title == "TSLA is costing you money" {
			hit = true
		}
	}
	assert.True(t, hit)
}

func TestLossTiltFiresAtFive(t *testing.T) {
	mkLosses := func(n int) []models.Trade {
		trades := make([]models.Trade, n)
		for i := range trades {
			trades[i] = models.Trade{
				ID:   fmt.Sprintf("l%d", i),
				Date: fmt.Sprintf("2024-03-%02d", i+1),
				PnL:  -10,
			}
		}
		return trades
	}

	hasTilt := func(trades []models.Trade) bool {
		for _, in := range Generate(trades) {
			if in.Title == "Watch for tilt" {
				return true
			}
		}
		return false
	}

	assert.False(t, hasTilt(mkLosses(4)))
	assert.True(t, hasTilt(mkLosses(5)))
}

func TestSideBiasNeedsGapAndVolume(t *testing.T) {
	mk := func(longWins int) []models.Trade {
		var trades []models.Trade
		day := 1
		add := func(side models.Side, pnl float64) {
			trades = append(trades, models.Trade{
				ID:   fmt.Sprintf("t%d", day),
				Date: fmt.Sprintf("2024-02-%02d", day),
				Side: side,
				PnL:  pnl,
			})
			day++
		}
		for i := 0; i < 5; i++ {
			pnl := -10.0
			if i < longWins {
				pnl = 10
			}
			add(models.SideLong, pnl)
		}
		for i := 0; i < 5; i++ {
			add(models.SideShort, -10)
		}
		return trades
	}

	hasBias := func(trades []models.Trade) bool {
		for _, in := range Generate(trades) {
			if in.Severity == SeverityInfo && in.Title == "You trade long better than short" {
				return true
			}
		}
		return false
	}

	// 20-point win-rate gap required: 0% shorts vs 20% longs fires.
	assert.True(t, hasBias(mk(1)))
	assert.False(t, hasBias(mk(0)))
}

func TestGenerateCapsAtSix(t *testing.T) {
	// A rich history that trips many rules at once.
	var trades []models.Trade
	id := 0
	add := func(date, tm, symbol string, side models.Side, pnl float64, tags ...string) {
		id++
		trades = append(trades, models.Trade{
			ID: fmt.Sprintf("t%d", id), Date: date, Time: tm,
			Symbol: symbol, Side: side, PnL: pnl, Tags: tags,
		})
	}

	// Winning AAPL mornings tagged Breakout, on Mondays.
	for i := 0; i < 6; i++ {
		add(fmt.Sprintf("2024-03-%02d", 4+7*(i%2)), "10:00", "AAPL", models.SideLong, 100, "Breakout")
	}
	// Losing TSLA Friday afternoons tagged Scalp.
	for i := 0; i < 6; i++ {
		add("2024-03-15", "14:30", "TSLA", models.SideShort, -50, "Scalp")
	}

	found := Generate(trades)
	assert.LessOrEqual(t, len(found), 6)
	assert.NotEmpty(t, found)

	// Priority order is stable: the best-symbol rule leads.
	assert.Contains(t, found[0].Title, "AAPL")
}
