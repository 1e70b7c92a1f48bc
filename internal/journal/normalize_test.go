package journal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-journal/internal/models"
)

func TestNormalizeBrokerExport(t *testing.T) {
	csv := strings.Join([]string{
		"Id,BoughtTimestamp,Symbol,Quantity,BuyPrice,SellPrice,PnL,BuyFillId,SellFillId,SoldTimestamp",
		"T1,2024-03-15 09:45:00,aapl,100,150.00,152.00,200.00,1001,1002,2024-03-15 10:15:00",
	}, "\n")

	trades := Normalize(csv)
	require.Len(t, trades, 1)

	got := trades[0]
	assert.Equal(t, "T1", got.ID)
	assert.Equal(t, "2024-03-15", got.Date)
	assert.Equal(t, "09:45", got.Time)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, models.SideLong, got.Side)
	assert.Equal(t, 100.0, got.Quantity)
	assert.Equal(t, 150.0, got.EntryPrice)
	assert.Equal(t, 152.0, got.ExitPrice)
	assert.Equal(t, 200.0, got.PnL)
}

func TestNormalizeAliasPriority(t *testing.T) {
	// trade_id loses to id; ticker serves when symbol is absent.
	csv := strings.Join([]string{
		"id,trade_id,ticker,entry_date,qty,entry,exit",
		"A1,B1,msft,2024-01-02,10,400,405",
	}, "\n")

	trades := Normalize(csv)
	require.Len(t, trades, 1)
	assert.Equal(t, "A1", trades[0].ID)
	assert.Equal(t, "MSFT", trades[0].Symbol)
	assert.Equal(t, "2024-01-02", trades[0].Date)
}

func TestNormalizeParenthesizedPnL(t *testing.T) {
	assert.Equal(t, -45.5, ParsePnL("(45.50)"))
	assert.Equal(t, -1250.0, ParsePnL("($1250.00)"))
	assert.Equal(t, 99.9, ParsePnL("$99.90"))
	assert.Equal(t, 0.0, ParsePnL("n/a"))
	assert.Equal(t, 0.0, ParsePnL(""))
}

func TestNormalizeDerivesPnLFromPrices(t *testing.T) {
	csv := strings.Join([]string{
		"id,date,symbol,side,quantity,entry_price,exit_price",
		"T1,2024-03-15,AAPL,long,100,150,152",
		"T2,2024-03-15,AAPL,short,100,150,152",
	}, "\n")

	trades := Normalize(csv)
	require.Len(t, trades, 2)
	assert.Equal(t, 200.0, trades[0].PnL)
	assert.Equal(t, -200.0, trades[1].PnL)
}

func TestNormalizeSideInferenceFromFillIDs(t *testing.T) {
	csv := strings.Join([]string{
		"id,boughttimestamp,soldtimestamp,buyfillid,sellfillid,symbol",
		"T1,2024-03-15 09:30:00,2024-03-15 09:45:00,100,200,SPY",
		"T2,2024-03-15 09:30:00,2024-03-15 09:45:00,300,200,SPY",
	}, "\n")

	trades := Normalize(csv)
	require.Len(t, trades, 2)
	assert.Equal(t, models.SideLong, trades[0].Side)
	assert.Equal(t, models.SideShort, trades[1].Side)
}

func TestNormalizeGeneratesFallbackIDs(t *testing.T) {
	csv := strings.Join([]string{
		"date,symbol,pnl",
		"2024-03-15,AAPL,10",
		"2024-03-15,AAPL,20",
	}, "\n")

	trades := Normalize(csv)
	require.Len(t, trades, 2)
	assert.True(t, strings.HasPrefix(trades[0].ID, "trade_"))
	assert.True(t, strings.HasPrefix(trades[1].ID, "trade_"))
	assert.NotEqual(t, trades[0].ID, trades[1].ID)
}

func TestNormalizeMalformedInput(t *testing.T) {
	assert.Nil(t, Normalize(""))
	assert.Nil(t, Normalize("just,a,header"))
	assert.Nil(t, Normalize("\n\n  \n"))
}

func TestNormalizeShortRowsPadded(t *testing.T) {
	csv := strings.Join([]string{
		"id,date,symbol,quantity,pnl",
		"T1,2024-03-15",
	}, "\n")

	trades := Normalize(csv)
	require.Len(t, trades, 1)
	assert.Equal(t, "T1", trades[0].ID)
	assert.Equal(t, "", trades[0].Symbol)
	assert.Equal(t, 0.0, trades[0].Quantity)
}

func TestNormalizeSetupColumnBecomesTag(t *testing.T) {
	csv := strings.Join([]string{
		"id,date,symbol,tags,strategy",
		"T1,2024-03-15,AAPL,Breakout;Swing,Breakout",
		"T2,2024-03-15,AAPL,Swing,Reversal",
	}, "\n")

	trades := Normalize(csv)
	require.Len(t, trades, 2)
	assert.Equal(t, []string{"Breakout", "Swing"}, trades[0].Tags)
	assert.Equal(t, []string{"Swing", "Reversal"}, trades[1].Tags)
}

func TestExportRoundTrip(t *testing.T) {
	original := models.Trade{
		ID:         "manual_x",
		Date:       "2024-03-15",
		Symbol:     "AAPL",
		Side:       models.SideLong,
		Quantity:   100,
		EntryPrice: 150,
		ExitPrice:  152,
		Fees:       2.5,
		PnL:        197.5,
		Tags:       []string{"Breakout", "Swing"},
		TradeNotes: "clean setup",
	}

	csv, err := ExportCSV([]models.Trade{original})
	require.NoError(t, err)

	back := Normalize(csv)
	require.Len(t, back, 1)

	got := back[0]
	assert.Equal(t, original.Date, got.Date)
	assert.Equal(t, original.Symbol, got.Symbol)
	assert.Equal(t, original.Side, got.Side)
	assert.Equal(t, original.Quantity, got.Quantity)
	assert.Equal(t, original.EntryPrice, got.EntryPrice)
	assert.Equal(t, original.ExitPrice, got.ExitPrice)
	assert.Equal(t, original.PnL, got.PnL)
	assert.Equal(t, original.Fees, got.Fees)
	assert.Equal(t, original.Tags, got.Tags)
	// Trade notes export into the Notes column.
	assert.Equal(t, original.TradeNotes, got.Notes)
}
