// Package pricing turns a line item's raw inputs into derived money figures
// and rolls them up through groups, packages and the whole quote.
//
// Arithmetic is exact (decimal) on the coalesced inputs; each output is
// rounded half-up to cents independently from its unrounded intermediate.
// Aggregates sum the rounded per-line figures so that subtotals reconcile
// with displayed line totals.
package pricing

import (
	"math"

	"github.com/jacobe603/quote-builder/internal/quote/domain"
	"github.com/shopspring/decimal"
)

var (
	one  = decimal.NewFromInt(1)
	half = decimal.New(5, -1)
)

// Inputs are the coalesced numeric fields of a line item.
type Inputs struct {
	Quantity         decimal.Decimal
	ListPrice        decimal.Decimal
	PriceIncreasePct decimal.Decimal
	Multiplier       decimal.Decimal
	PayPct           decimal.Decimal
	Freight          decimal.Decimal
	Markup           decimal.Decimal
}

// InputsOf coalesces a line item's fields. Non-finite values become 0; an
// unset (zero) or non-finite markup becomes 1.
func InputsOf(item domain.LineItem) Inputs {
	markup := coalesce(item.Markup)
	if markup.IsZero() {
		markup = one
	}
	return Inputs{
		Quantity:         coalesce(item.Quantity),
		ListPrice:        coalesce(item.ListPrice),
		PriceIncreasePct: coalesce(item.PriceIncreasePct),
		Multiplier:       coalesce(item.Multiplier),
		PayPct:           coalesce(item.PayPct),
		Freight:          coalesce(item.Freight),
		Markup:           markup,
	}
}

// Compute returns the derived financials of one line item.
func Compute(item domain.LineItem) domain.Financials {
	in := InputsOf(item)

	mfgNet := in.Quantity.Mul(in.ListPrice).Mul(in.Multiplier).Mul(one.Add(in.PriceIncreasePct))
	mfgCommission := mfgNet.Mul(in.PayPct)
	totalNet := mfgNet.Add(in.Freight)
	bidPrice := totalNet.Mul(in.Markup)
	salesCommission := bidPrice.Sub(totalNet).Add(mfgCommission)

	return domain.Financials{
		MfgNet:          RoundCents(mfgNet),
		MfgCommission:   RoundCents(mfgCommission),
		TotalNet:        RoundCents(totalNet),
		BidPrice:        RoundCents(bidPrice),
		SalesCommission: RoundCents(salesCommission),
	}
}

// Aggregate sums the rounded per-line totals of items. An empty slice yields zeros.
func Aggregate(items []domain.LineItem) domain.Totals {
	totals := domain.Totals{
		TotalNet:        decimal.Zero,
		BidPrice:        decimal.Zero,
		SalesCommission: decimal.Zero,
	}
	for _, item := range items {
		totals = add(totals, Compute(item))
	}
	return totals
}

// RoundCents rounds half toward positive infinity at two decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

func add(t domain.Totals, f domain.Financials) domain.Totals {
	return domain.Totals{
		TotalNet:        t.TotalNet.Add(f.TotalNet),
		BidPrice:        t.BidPrice.Add(f.BidPrice),
		SalesCommission: t.SalesCommission.Add(f.SalesCommission),
	}
}

func coalesce(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
