package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatColones formats a colón amount for display, e.g. "₡12 500".
// Prices are kept in whole colones, so the amount is rounded to 0 decimals
// and grouped in threes the way es-CR renders currency.
func FormatColones(amount decimal.Decimal) string {
	s := amount.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₡")
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return b.String()
}
