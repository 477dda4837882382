// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/scold/internal/model"
)

// FormatMoney formats an amount with the currency symbol in front.
// e.g., ("$", 1234.5) -> "$1,234.50", ("€", -3) -> "-€3.00"
func FormatMoney(m model.Money, currency string) string {
	if m.IsNegative() {
		return "-" + FormatMoney(m.Neg(), currency)
	}
	whole, frac, _ := strings.Cut(m.String(), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return currency + m.String()
	}
	return currency + FormatNumber(n) + "." + frac
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDeviation formats a spend-minus-limit amount with an explicit sign.
func FormatDeviation(d model.Money, currency string) string {
	if d.IsPositive() {
		return "+" + FormatMoney(d, currency)
	}
	return FormatMoney(d, currency)
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
