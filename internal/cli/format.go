// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"fmt"
	"strings"
	"time"

	"trading-journal/internal/models"
)

// FormatCurrency formats a dollar amount with thousands separators.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := groupThousands(parts[0])

	result := "$" + intPart + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPnL formats P&L with sign.
func FormatPnL(pnl float64) string {
	formatted := FormatCurrency(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatPrice formats a price with two decimal places.
func FormatPrice(price float64) string {
	if price < 10 && price != 0 {
		return fmt.Sprintf("%.4f", price)
	}
	return fmt.Sprintf("%.2f", price)
}

// FormatQuantity formats a trade quantity, dropping the fraction when
// the quantity is whole.
func FormatQuantity(qty float64) string {
	if qty == float64(int64(qty)) {
		return groupThousands(fmt.Sprintf("%d", int64(qty)))
	}
	return fmt.Sprintf("%.2f", qty)
}

// FormatRatio formats a dimensionless ratio such as profit factor.
func FormatRatio(r float64) string {
	return fmt.Sprintf("%.2f", r)
}

// FormatDate formats a canonical journal date for display.
func FormatDate(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02-Jan-2006")
}

// FormatSide formats a trade side for display.
func FormatSide(side models.Side) string {
	switch side {
	case models.SideLong:
		return "LONG"
	case models.SideShort:
		return "SHORT"
	default:
		return "-"
	}
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PadRight pads a string to the right.
func PadRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// PadLeft pads a string to the left.
func PadLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
