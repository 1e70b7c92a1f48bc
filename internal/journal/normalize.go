// Package journal implements the trade normalization, deduplication,
// filtering, and import/export engine. Every function is pure: inputs are
// never mutated and no I/O happens here. Hosts own loading, saving, and
// presentation.
package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"trading-journal/internal/models"
)

// Column aliases per logical field, checked in priority order. The first
// alias with a non-empty value wins. Export headers ("entry price", "p&l")
// are included so an exported file re-imports cleanly.
var (
	idAliases     = []string{"id", "trade_id", "buyfillid"}
	dateAliases   = []string{"boughttimestamp", "soldtimestamp", "date", "entry_date", "trade_date"}
	symbolAliases = []string{"symbol", "ticker", "stock"}
	qtyAliases    = []string{"quantity", "qty", "shares", "size"}
	entryAliases  = []string{"entry_price", "buyprice", "entry", "buy_price", "entry price"}
	exitAliases   = []string{"exit_price", "sellprice", "exit", "sell_price", "exit price"}
	pnlAliases    = []string{"pnl", "profit_loss", "profit", "p&l"}
	feesAliases   = []string{"fees", "commission"}
	notesAliases  = []string{"notes", "comments", "duration"}
	tagAliases    = []string{"tags"}
	setupAliases  = []string{"strategy", "setup"}
)

// Normalize parses raw CSV text into canonical trades.
//
// The first non-empty line is the header row, lowercase-normalized and
// comma-split. Rows shorter than the header are padded with empty fields.
// Malformed input (fewer than two non-empty lines) yields no trades rather
// than an error; unparseable numerics coerce to zero.
func Normalize(raw string) []models.Trade {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return nil
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}

	importedAt := time.Now().UnixMilli()
	trades := make([]models.Trade, 0, len(lines)-1)

	for i, line := range lines[1:] {
		values := strings.Split(line, ",")
		row := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(values) {
				row[h] = strings.TrimSpace(values[j])
			} else {
				row[h] = ""
			}
		}
		trades = append(trades, normalizeRow(row, importedAt, i+1))
	}

	return trades
}

func normalizeRow(row map[string]string, importedAt int64, rowIndex int) models.Trade {
	timestamp := firstValue(row, dateAliases)

	t := models.Trade{
		ID:         firstValue(row, idAliases),
		Date:       dateToken(timestamp),
		Time:       timeToken(timestamp),
		Symbol:     strings.ToUpper(firstValue(row, symbolAliases)),
		Side:       inferSide(row),
		Quantity:   parseNumber(firstValue(row, qtyAliases)),
		EntryPrice: parseNumber(firstValue(row, entryAliases)),
		ExitPrice:  parseNumber(firstValue(row, exitAliases)),
		PnL:        ParsePnL(firstValue(row, pnlAliases)),
		Fees:       parseNumber(firstValue(row, feesAliases)),
		Notes:      firstValue(row, notesAliases),
		Duration:   row["duration"],
		Tags:       splitTags(firstValue(row, tagAliases)),
	}

	// A strategy/setup column contributes a tag when the tags column
	// did not already carry it.
	if setup := firstValue(row, setupAliases); setup != "" && !t.HasTag(setup) {
		t.Tags = append(t.Tags, setup)
	}

	if t.ID == "" {
		t.ID = fmt.Sprintf("trade_%d_%d", importedAt, rowIndex)
	}

	// Fall back to deriving P&L from prices when the column was absent
	// or unparseable.
	if t.PnL == 0 && t.EntryPrice != 0 && t.ExitPrice != 0 && t.Quantity != 0 {
		t.PnL = DerivePnL(t.Side, t.EntryPrice, t.ExitPrice, t.Quantity, t.Fees)
	}

	return t
}

// inferSide resolves the trade direction. An explicit side column wins.
// Without one, paired bought/sold timestamps let us compare fill-order
// ids: the lower id executed first, so buy-first means the trade opened
// long.
func inferSide(row map[string]string) models.Side {
	if explicit := row["side"]; explicit != "" {
		return models.NormalizeSide(explicit)
	}
	if row["boughttimestamp"] != "" && row["soldtimestamp"] != "" {
		buyID, _ := strconv.Atoi(row["buyfillid"])
		sellID, _ := strconv.Atoi(row["sellfillid"])
		if buyID < sellID {
			return models.SideLong
		}
		return models.SideShort
	}
	return models.SideUnknown
}

// DerivePnL computes profit and loss from prices and quantity, net of
// fees. Unknown sides are treated as long, matching the import fallback.
func DerivePnL(side models.Side, entry, exit, qty, fees float64) float64 {
	if side == models.SideShort {
		return (entry-exit)*qty - fees
	}
	return (exit-entry)*qty - fees
}

// ParsePnL parses a P&L cell. Dollar signs and whitespace are stripped and
// accounting-style parenthesized negatives like "(123.45)" are honored.
// Unparseable values coerce to zero.
func ParsePnL(s string) float64 {
	if s == "" {
		return 0
	}
	clean := strings.NewReplacer("$", "", " ", "", "\t", "").Replace(s)
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = "-" + clean[1:len(clean)-1]
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// dateToken extracts the calendar-date portion of a timestamp cell: its
// first whitespace-delimited token.
func dateToken(timestamp string) string {
	if timestamp == "" {
		return ""
	}
	return strings.Fields(timestamp)[0]
}

// timeToken extracts an HH:MM clock time from a timestamp cell's second
// token, when present.
func timeToken(timestamp string) string {
	fields := strings.Fields(timestamp)
	if len(fields) < 2 || len(fields[1]) < 5 {
		return ""
	}
	return fields[1][:5]
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func firstValue(row map[string]string, aliases []string) string {
	for _, a := range aliases {
		if v := row[a]; v != "" {
			return v
		}
	}
	return ""
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
