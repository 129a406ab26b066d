package tree

import (
	"github.com/jacobe603/quote-builder/internal/quote/domain"
	"github.com/jacobe603/quote-builder/internal/quote/pricing"
)

// View materializes the sorted, addressed tree of a snapshot with derived
// financials and totals. It is recomputed from scratch on every call.
func View(s *domain.Snapshot) *domain.QuoteView {
	idx := NewIndex(s)
	roll := pricing.Rollup(s)

	out := &domain.QuoteView{
		Version:        s.Version,
		Variant:        s.Variant,
		Project:        s.Project,
		Suppliers:      s.Suppliers,
		Manufacturers:  s.Manufacturers,
		EquipmentTypes: s.EquipmentTypes,
		Packages:       make([]domain.PackageView, 0, len(s.Packages)),
		Totals:         roll.Quote,
	}

	for _, pkgID := range idx.Packages() {
		pkg, _ := idx.Package(pkgID)
		addr, _ := idx.PackageAddress(pkgID)
		pv := domain.PackageView{
			Package: pkg,
			Address: addr.String(),
			Totals:  roll.Packages[pkgID],
		}

		if s.Grouped() {
			for _, groupID := range idx.Groups(pkgID) {
				g, _ := idx.Group(groupID)
				pv.Groups = append(pv.Groups, domain.GroupView{
					Group:  g,
					Totals: roll.Groups[groupID],
					Lines:  lineViews(idx, roll, idx.GroupPrimaries(groupID)),
				})
			}
		} else {
			pv.Lines = lineViews(idx, roll, idx.Primaries(pkgID))
		}
		out.Packages = append(out.Packages, pv)
	}
	return out
}

func lineViews(idx *Index, roll *domain.Rollup, ids []string) []domain.LineView {
	out := make([]domain.LineView, 0, len(ids))
	for _, id := range ids {
		li, _ := idx.Item(id)
		addr, _ := idx.LineAddress(id)
		out = append(out, domain.LineView{
			LineItem:   li,
			Address:    addr.String(),
			Financials: roll.Lines[id],
			SubLines:   lineViews(idx, roll, idx.SubLines(id)),
		})
	}
	return out
}
