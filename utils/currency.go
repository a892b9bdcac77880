package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCedi formats an amount as Ghana cedis with two decimals.
// Example: 1250.5 -> "GH₵1,250.50"
func FormatCedi(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	integerPart := parts[0]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}
	return sign + "GH₵" + strings.Join(groups, ",") + "." + parts[1]
}
