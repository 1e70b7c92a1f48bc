package journal

import (
	"strings"

	"github.com/gocarina/gocsv"

	"trading-journal/internal/models"
)

// exportRow is the fixed export schema. Header names are chosen so that
// re-importing an exported file resolves through the normalizer's aliases.
type exportRow struct {
	Date       string  `csv:"Date"`
	Symbol     string  `csv:"Symbol"`
	Side       string  `csv:"Side"`
	Quantity   float64 `csv:"Quantity"`
	EntryPrice float64 `csv:"Entry Price"`
	ExitPrice  float64 `csv:"Exit Price"`
	PnL        float64 `csv:"P&L"`
	Fees       float64 `csv:"Fees"`
	Duration   string  `csv:"Duration"`
	Tags       string  `csv:"Tags"`
	Notes      string  `csv:"Notes"`
}

// ExportCSV renders trades as CSV text with the fixed export columns.
// Tags are re-joined with ";"; trade notes win over imported notes.
func ExportCSV(trades []models.Trade) (string, error) {
	rows := make([]exportRow, 0, len(trades))
	for _, t := range trades {
		notes := t.TradeNotes
		if notes == "" {
			notes = t.Notes
		}
		rows = append(rows, exportRow{
			Date:       t.Date,
			Symbol:     t.Symbol,
			Side:       string(t.Side),
			Quantity:   t.Quantity,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			PnL:        t.PnL,
			Fees:       t.Fees,
			Duration:   t.Duration,
			Tags:       strings.Join(t.Tags, ";"),
			Notes:      notes,
		})
	}
	return gocsv.MarshalString(&rows)
}
