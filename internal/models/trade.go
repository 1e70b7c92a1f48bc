// Package models defines the core data entities for the trading journal.
package models

import (
	"strconv"
	"strings"
	"time"
)

// Side represents the direction of a trade.
type Side string

const (
	SideLong    Side = "long"
	SideShort   Side = "short"
	SideUnknown Side = "unknown"
)

// NormalizeSide resolves broker aliases to a canonical side.
// "buy" maps to long, "sell" maps to short. Anything unrecognized
// (including the empty string) is unknown.
func NormalizeSide(s string) Side {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return SideLong
	case "short", "sell":
		return SideShort
	default:
		return SideUnknown
	}
}

// DateLayout is the canonical calendar-date form used throughout the journal.
const DateLayout = "2006-01-02"

// Trade represents a completed trade.
//
// Date is a calendar date in YYYY-MM-DD form; Time is an optional HH:MM
// clock time used only for intraday breakdowns. PnL is signed and either
// imported as-is or derived from side, prices, quantity, and fees.
type Trade struct {
	ID          string
	Date        string
	Time        string
	Symbol      string
	Side        Side
	Quantity    float64
	EntryPrice  float64
	ExitPrice   float64
	Fees        float64
	PnL         float64
	Tags        []string
	TradeNotes  string
	Notes       string
	Duration    string
	Screenshots []Screenshot
}

// ParsedDate returns the trade's calendar date and whether it parsed.
// Trades whose date does not parse are excluded from every date-ordered
// computation.
func (t Trade) ParsedDate() (time.Time, bool) {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Hour returns the trade's hour of day and whether a clock time is present.
func (t Trade) Hour() (int, bool) {
	if len(t.Time) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(t.Time[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// Minutes returns the trade's clock time as minutes since midnight.
func (t Trade) Minutes() (int, bool) {
	if len(t.Time) < 5 || t.Time[2] != ':' {
		return 0, false
	}
	h, err1 := strconv.Atoi(t.Time[:2])
	m, err2 := strconv.Atoi(t.Time[3:5])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// HasTag reports whether the trade carries the given strategy tag.
func (t Trade) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// PositionValue returns the notional value of the position at entry.
func (t Trade) PositionValue() float64 {
	return t.EntryPrice * t.Quantity
}

// Clone returns a deep copy of the trade. Engine functions never mutate
// their inputs; hosts that edit records should edit a clone.
func (t Trade) Clone() Trade {
	c := t
	c.Tags = append([]string(nil), t.Tags...)
	c.Screenshots = append([]Screenshot(nil), t.Screenshots...)
	return c
}

// Screenshot is an image attached to a trade. Screenshots are owned
// exclusively by their trade and play no part in analytics.
type Screenshot struct {
	ID       string
	Filename string
	Caption  string
	Data     []byte
	TakenAt  time.Time
}
