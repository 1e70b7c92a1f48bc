// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any amount, FormatCurrency should:
// 1. Start with $ (or -$ for negative)
// 2. Have exactly 2 decimal places
// 3. Group the integer part in threes
// 4. Preserve the numeric value when parsed back
func TestCurrencyFormattingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatCurrency produces valid format", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}
			if math.Abs(amount) > 1e12 {
				return true
			}

			formatted := FormatCurrency(amount)

			if amount >= 0 {
				if !strings.HasPrefix(formatted, "$") {
					t.Logf("Expected $ prefix for %f, got %s", amount, formatted)
					return false
				}
			} else {
				if !strings.HasPrefix(formatted, "-$") {
					t.Logf("Expected -$ prefix for %f, got %s", amount, formatted)
					return false
				}
			}

			parts := strings.Split(formatted, ".")
			if len(parts) != 2 || len(parts[1]) != 2 {
				t.Logf("Expected 2 decimal places for %f, got %s", amount, formatted)
				return false
			}

			numPart := strings.TrimPrefix(formatted, "-")
			numPart = strings.TrimPrefix(numPart, "$")
			numPart = strings.Split(numPart, ".")[0]

			groupedPattern := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)
			if !groupedPattern.MatchString(numPart) {
				t.Logf("Invalid grouping for %f: %s", amount, formatted)
				return false
			}

			return true
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("FormatCurrency preserves value", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}

			formatted := FormatCurrency(amount)
			parsed := parseCurrency(formatted)

			rounded := math.Round(amount*100) / 100
			return math.Abs(parsed-rounded) <= 0.01
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("FormatPercent carries sign and suffix", prop.ForAll(
		func(value float64) bool {
			formatted := FormatPercent(value)
			if !strings.HasSuffix(formatted, "%") {
				return false
			}
			if value > 0 && !strings.HasPrefix(formatted, "+") {
				return false
			}
			return true
		},
		gen.Float64Range(-100, 100),
	))

	properties.Property("FormatPnL signs positives", prop.ForAll(
		func(value float64) bool {
			formatted := FormatPnL(value)
			if value > 0 {
				return strings.HasPrefix(formatted, "+$")
			}
			if value < 0 {
				return strings.HasPrefix(formatted, "-$")
			}
			return strings.HasPrefix(formatted, "$")
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

// parseCurrency parses a formatted currency string back to float64.
func parseCurrency(s string) float64 {
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	parsed, _ := strconv.ParseFloat(s, 64)
	if negative {
		parsed = -parsed
	}
	return parsed
}

func TestCurrencyFormatExamples(t *testing.T) {
	testCases := []struct {
		amount   float64
		expected string
	}{
		{0, "$0.00"},
		{1, "$1.00"},
		{999.99, "$999.99"},
		{1000, "$1,000.00"},
		{10000, "$10,000.00"},
		{1000000, "$1,000,000.00"},
		{-1234.56, "-$1,234.56"},
		{1234567.89, "$1,234,567.89"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			result := FormatCurrency(tc.amount)
			if result != tc.expected {
				t.Errorf("FormatCurrency(%f) = %s, want %s", tc.amount, result, tc.expected)
			}
		})
	}
}

func TestFormatPercentExamples(t *testing.T) {
	testCases := []struct {
		value    float64
		expected string
	}{
		{0, "0.00%"},
		{1.5, "+1.50%"},
		{-2.5, "-2.50%"},
		{100, "+100.00%"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			result := FormatPercent(tc.value)
			if result != tc.expected {
				t.Errorf("FormatPercent(%f) = %s, want %s", tc.value, result, tc.expected)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q, want %q", got, "ab   ")
	}
	if got := PadLeft("ab", 5); got != "   ab" {
		t.Errorf("PadLeft = %q, want %q", got, "   ab")
	}
	if got := PadRight("abcdef", 4); got != "abcdef" {
		t.Errorf("PadRight should not truncate, got %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("hello world", 8); got != "hello..." {
		t.Errorf("TruncateString = %s, want hello...", got)
	}
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString = %s, want short", got)
	}
	if got := TruncateString("abc", 2); got != "ab" {
		t.Errorf("TruncateString = %s, want ab", got)
	}
}
