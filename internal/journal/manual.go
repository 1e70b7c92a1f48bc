package journal

import (
	"strings"

	"trading-journal/internal/models"
	"trading-journal/pkg/id"
)

// ManualEntry mirrors the trade schema minus derived fields, for
// programmatic submission of a single trade.
type ManualEntry struct {
	Date       string
	Time       string
	Symbol     string
	Side       models.Side
	Quantity   float64
	EntryPrice float64
	ExitPrice  float64
	Fees       float64
	Tags       []string
	TradeNotes string
}

// NewManualTrade builds a canonical trade from entry fields. P&L is always
// derived from side, prices, quantity, and fees, and the id is generated
// fresh so manual entries never collide with imports.
func NewManualTrade(e ManualEntry) models.Trade {
	return models.Trade{
		ID:         "manual_" + id.New(),
		Date:       e.Date,
		Time:       e.Time,
		Symbol:     strings.ToUpper(strings.TrimSpace(e.Symbol)),
		Side:       e.Side,
		Quantity:   e.Quantity,
		EntryPrice: e.EntryPrice,
		ExitPrice:  e.ExitPrice,
		Fees:       e.Fees,
		PnL:        DerivePnL(e.Side, e.EntryPrice, e.ExitPrice, e.Quantity, e.Fees),
		Tags:       append([]string(nil), e.Tags...),
		TradeNotes: e.TradeNotes,
	}
}
