package tree

import "github.com/jacobe603/quote-builder/internal/quote/domain"

// groupedQuote mirrors the seed data plus a second package with one group and
// a third package with no groups.
//
//	1      Rooftop Units (grp1)
//	1.1    li1  1.1.1 li2  1.1.2 li3
//	1.2    li4
//	1.3    li5
//	1.4    li6
//	1.5    li7
//	2      Controls (grp2)
//	2.1    li8  2.1.1 li9
//	3      Empty
func groupedQuote() *domain.Snapshot {
	return &domain.Snapshot{
		Version: 1,
		Variant: domain.VariantGrouped,
		Packages: []domain.Package{
			{ID: "pkg1", Name: "Rooftop Units", DefaultMarkup: 1.35, SortOrder: 1},
			{ID: "pkg2", Name: "Controls", DefaultMarkup: 1.5, SortOrder: 2},
			{ID: "pkg3", Name: "Empty", SortOrder: 3},
		},
		Groups: []domain.Group{
			{ID: "grp1", PackageID: "pkg1", Name: "RTU - AAON RN Series", SortOrder: 1},
			{ID: "grp2", PackageID: "pkg2", Name: "BAS", SortOrder: 1},
		},
		LineItems: []domain.LineItem{
			{ID: "li1", PackageID: "pkg1", GroupID: "grp1", Quantity: 3, SupplierID: "sup1", ManufacturerID: "mfr1", ListPrice: 18000, PriceIncreasePct: 0.03, Multiplier: 0.42, PayPct: 0.05, Freight: 1200, Markup: 1.35, SortOrder: 1},
			{ID: "li2", PackageID: "pkg1", GroupID: "grp1", ParentID: "li1", Quantity: 3, ListPrice: 1100, PriceIncreasePct: 0.03, Multiplier: 0.42, Markup: 1.35, SortOrder: 1},
			{ID: "li3", PackageID: "pkg1", GroupID: "grp1", ParentID: "li1", Quantity: 3, ListPrice: 600, PriceIncreasePct: 0.03, Multiplier: 0.42, Markup: 1.35, SortOrder: 2},
			{ID: "li4", PackageID: "pkg1", GroupID: "grp1", Quantity: 2, ListPrice: 22000, PriceIncreasePct: 0.03, Multiplier: 0.42, PayPct: 0.05, Freight: 800, Markup: 1.35, SortOrder: 2},
			{ID: "li5", PackageID: "pkg1", GroupID: "grp1", Quantity: 5, ListPrice: 1200, PriceIncreasePct: 0.03, Multiplier: 0.42, Freight: 400, Markup: 1.35, SortOrder: 3},
			{ID: "li6", PackageID: "pkg1", GroupID: "grp1", Quantity: 1, ListPrice: 4500, Multiplier: 0.65, Markup: 1.40, SortOrder: 4},
			{ID: "li7", PackageID: "pkg1", GroupID: "grp1", Quantity: 1, ListPrice: 2100, Multiplier: 1.0, Markup: 1.35, SortOrder: 5},
			{ID: "li8", PackageID: "pkg2", GroupID: "grp2", Quantity: 1, ListPrice: 1000, Multiplier: 1, Markup: 1.5, SortOrder: 1},
			{ID: "li9", PackageID: "pkg2", GroupID: "grp2", ParentID: "li8", Quantity: 2, ListPrice: 100, Multiplier: 1, Markup: 1.5, SortOrder: 1},
		},
	}
}

// packageQuote is the two-level layout: lines hang directly off packages.
func packageQuote() *domain.Snapshot {
	return &domain.Snapshot{
		Version: 1,
		Variant: domain.VariantPackage,
		Packages: []domain.Package{
			{ID: "pkgA", Name: "Air Handlers", DefaultMarkup: 1.25, SortOrder: 10},
			{ID: "pkgB", Name: "Pumps", SortOrder: 20},
		},
		LineItems: []domain.LineItem{
			{ID: "a1", PackageID: "pkgA", Quantity: 1, ListPrice: 500, Multiplier: 1, SortOrder: 4},
			{ID: "a2", PackageID: "pkgA", Quantity: 1, ListPrice: 300, Multiplier: 1, SortOrder: 2},
			{ID: "a2s", PackageID: "pkgA", ParentID: "a2", Quantity: 1, ListPrice: 50, Multiplier: 1, SortOrder: 7},
			{ID: "b1", PackageID: "pkgB", Quantity: 1, ListPrice: 900, Multiplier: 1, SortOrder: 1},
		},
	}
}

func lineByID(t interface{ Fatalf(string, ...any) }, s *domain.Snapshot, id string) domain.LineItem {
	for _, li := range s.LineItems {
		if li.ID == id {
			return li
		}
	}
	t.Fatalf("line %s not found", id)
	return domain.LineItem{}
}
