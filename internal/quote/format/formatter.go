package format

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/jacobe603/quote-builder/internal/quote/pricing"
	"github.com/shopspring/decimal"
)

// Currency formats an amount as US dollars: "$1,234.56", "-$0.50".
//
// The same input always yields the same string.
func Currency(amount decimal.Decimal) string {
	amount = pricing.RoundCents(amount)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", amount.InexactFloat64())
}

// Percent renders a fractional rate with one decimal: 0.05 -> "5.0%".
func Percent(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return "0%"
	}
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(1) + "%"
}
