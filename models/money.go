package models

import "github.com/shopspring/decimal"

func init() {
	// Totals go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Cedis builds an amount from a float literal, rounded to pesewas.
func Cedis(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
