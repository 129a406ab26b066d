package pricing

import (
	"github.com/jacobe603/quote-builder/internal/quote/domain"
	"github.com/shopspring/decimal"
)

// Rollup computes every line's financials and the group, package and quote
// aggregates of a snapshot. Each aggregate covers primary and sub-lines.
func Rollup(s *domain.Snapshot) *domain.Rollup {
	out := &domain.Rollup{
		Version:  s.Version,
		Lines:    make(map[string]domain.Financials, len(s.LineItems)),
		Packages: make(map[string]domain.Totals, len(s.Packages)),
		Quote:    zeroTotals(),
	}
	if s.Grouped() {
		out.Groups = make(map[string]domain.Totals, len(s.Groups))
		for _, g := range s.Groups {
			out.Groups[g.ID] = zeroTotals()
		}
	}
	for _, p := range s.Packages {
		out.Packages[p.ID] = zeroTotals()
	}

	for _, item := range s.LineItems {
		f := Compute(item)
		out.Lines[item.ID] = f
		out.Quote = add(out.Quote, f)
		if t, ok := out.Packages[item.PackageID]; ok {
			out.Packages[item.PackageID] = add(t, f)
		}
		if out.Groups != nil {
			if t, ok := out.Groups[item.GroupID]; ok {
				out.Groups[item.GroupID] = add(t, f)
			}
		}
	}
	return out
}

func zeroTotals() domain.Totals {
	return domain.Totals{
		TotalNet:        decimal.Zero,
		BidPrice:        decimal.Zero,
		SalesCommission: decimal.Zero,
	}
}
