package metrics

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"trading-journal/internal/models"
)

func pnlTrades(pnls ...float64) []models.Trade {
	trades := make([]models.Trade, len(pnls))
	for i, p := range pnls {
		trades[i] = models.Trade{
			ID:   fmt.Sprintf("t%d", i),
			Date: fmt.Sprintf("2024-03-%02d", i+1),
			PnL:  p,
		}
	}
	return trades
}

func TestComputeEmptyInput(t *testing.T) {
	assert.Equal(t, Summary{}, Compute(nil))
	assert.Equal(t, Summary{}, Compute([]models.Trade{}))
}

func TestComputeBasicCounts(t *testing.T) {
	s := Compute(pnlTrades(100, -50, 200, -25, 0))

	assert.Equal(t, 5, s.TotalTrades)
	assert.Equal(t, 2, s.WinningTrades)
	assert.Equal(t, 2, s.LosingTrades)
	assert.Equal(t, 40.0, s.WinRate)
	assert.Equal(t, 225.0, s.TotalPnL)
	assert.Equal(t, 150.0, s.AverageWin)
	assert.Equal(t, 37.5, s.AverageLoss)
	assert.Equal(t, 4.0, s.ProfitFactor)
	assert.Equal(t, 200.0, s.LargestWin)
	assert.Equal(t, -50.0, s.LargestLoss)
}

func TestComputeProfitFactorWithoutLosses(t *testing.T) {
	// No losing trades: profit factor degrades to gross profit.
	s := Compute(pnlTrades(100, 50))
	assert.Equal(t, 150.0, s.ProfitFactor)
}

func TestComputeExpectancy(t *testing.T) {
	// 50% wins averaging 100, 50% losses averaging 50.
	s := Compute(pnlTrades(100, -50, 100, -50))
	assert.InDelta(t, 25.0, s.Expectancy, 1e-9)
}

func TestMaxDrawdown(t *testing.T) {
	// Equity 100 -> -50 -> 0: deepest gap below the 100 peak is 150.
	s := Compute(pnlTrades(100, -150, 50))
	assert.Equal(t, 150.0, s.MaxDrawdown)
	assert.Equal(t, 150.0, s.MaxDrawdownPercent)

	// Never above water: depth accrues but the percent stays zero.
	s = Compute(pnlTrades(-100, -50))
	assert.Equal(t, 150.0, s.MaxDrawdown)
	assert.Equal(t, 0.0, s.MaxDrawdownPercent)
}

func TestMaxDrawdownPercentUsesFinalPeak(t *testing.T) {
	// Equity 100 -> 50 -> 250: the 50 dip is measured against the
	// final 250 peak, not the 100 peak it fell from.
	s := Compute(pnlTrades(100, -50, 200))
	assert.Equal(t, 50.0, s.MaxDrawdown)
	assert.Equal(t, 20.0, s.MaxDrawdownPercent)
}

func TestStreaksSkipBreakEven(t *testing.T) {
	// The zero between the losses neither breaks nor extends the run.
	s := Compute(pnlTrades(-10, 0, -10, -10, 5, 5))

	assert.Equal(t, 3, s.LoseStreak)
	assert.Equal(t, 2, s.WinStreak)
	assert.Equal(t, 2, s.CurrentStreak)
}

func TestCurrentStreakNegative(t *testing.T) {
	s := Compute(pnlTrades(10, -5, -5))
	assert.Equal(t, -2, s.CurrentStreak)
}

func TestSharpeZeroVariance(t *testing.T) {
	s := Compute(pnlTrades(50, 50, 50))
	assert.Equal(t, 0.0, s.SharpeRatio)
}

func TestSharpeSign(t *testing.T) {
	up := Compute(pnlTrades(100, -50, 100, -50, 100))
	down := Compute(pnlTrades(-100, 50, -100, 50, -100))
	assert.Positive(t, up.SharpeRatio)
	assert.Negative(t, down.SharpeRatio)
}

func TestKellyClamped(t *testing.T) {
	// Overwhelming edge clamps at 25.
	s := Compute(pnlTrades(1000, 1000, 1000, 1000, -1))
	assert.Equal(t, 25.0, s.KellyPercent)

	// Negative edge floors at 0.
	s = Compute(pnlTrades(10, -100, -100, -100))
	assert.Equal(t, 0.0, s.KellyPercent)
}

func TestAvgRMultipleSigned(t *testing.T) {
	trades := []models.Trade{
		{ID: "w", Date: "2024-03-01", EntryPrice: 100, Quantity: 10, PnL: 40},  // risk 20, +2R
		{ID: "l", Date: "2024-03-02", EntryPrice: 100, Quantity: 10, PnL: -20}, // risk 20, -1R
	}
	s := Compute(trades)
	assert.InDelta(t, 0.5, s.AvgRMultiple, 1e-9)
}

func TestAvgRMultipleSkipsZeroRisk(t *testing.T) {
	trades := []models.Trade{
		{ID: "a", Date: "2024-03-01", EntryPrice: 0, Quantity: 10, PnL: 40},
		{ID: "b", Date: "2024-03-02", EntryPrice: 100, Quantity: 10, PnL: 20},
	}
	s := Compute(trades)
	assert.InDelta(t, 1.0, s.AvgRMultiple, 1e-9)
}

func TestChronologicalDropsUnparseableDates(t *testing.T) {
	trades := []models.Trade{
		{ID: "b", Date: "2024-03-02"},
		{ID: "x", Date: "not a date"},
		{ID: "a", Date: "2024-03-01"},
	}
	ordered := Chronological(trades)
	assert.Len(t, ordered, 2)
	assert.Equal(t, "a", ordered[0].ID)
	assert.Equal(t, "b", ordered[1].ID)
}

func TestSummaryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	genPnLs := gen.SliceOf(gen.Float64Range(-1e6, 1e6))

	properties.Property("win rate within [0,100]", prop.ForAll(
		func(pnls []float64) bool {
			s := Compute(pnlTrades(pnls...))
			return s.WinRate >= 0 && s.WinRate <= 100
		},
		genPnLs,
	))

	properties.Property("counts partition trades", prop.ForAll(
		func(pnls []float64) bool {
			s := Compute(pnlTrades(pnls...))
			breakEven := 0
			for _, p := range pnls {
				if p == 0 {
					breakEven++
				}
			}
			return s.WinningTrades+s.LosingTrades+breakEven == s.TotalTrades
		},
		genPnLs,
	))

	properties.Property("drawdown non-negative and kelly clamped", prop.ForAll(
		func(pnls []float64) bool {
			s := Compute(pnlTrades(pnls...))
			if math.IsNaN(s.MaxDrawdown) || s.MaxDrawdown < 0 {
				return false
			}
			return s.KellyPercent >= 0 && s.KellyPercent <= 25
		},
		genPnLs,
	))

	properties.TestingRun(t)
}
