package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrencyTRY formats an amount as Turkish lira.
// Example: 15000.50 -> "15.000,50 TL"
func FormatCurrencyTRY(amount float64) string {
	// round to 2 decimals before splitting
	amount = math.Round(amount*100) / 100
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	integerPart = strings.TrimPrefix(integerPart, "-")

	// thousands separator
	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	out := strings.Join(groups, ".") + "," + decimalPart
	if negative {
		out = "-" + out
	}
	return out + " TL"
}
