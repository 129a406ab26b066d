// Package tree implements the structural operations on a quote: the
// arena-style index over a flat snapshot, address derivation, and the
// copy-on-write insert, delete and move operations.
package tree

import (
	"cmp"
	"math"
	"slices"

	"github.com/jacobe603/quote-builder/internal/quote/address"
	"github.com/jacobe603/quote-builder/internal/quote/domain"
)

// Index maps ids to slice positions and parents to their sorted children.
// It is built from one snapshot and is never updated in place.
type Index struct {
	snap *domain.Snapshot

	pkgPos   map[string]int
	groupPos map[string]int
	itemPos  map[string]int

	packages  []string
	groups    map[string][]string // package id -> group ids
	primaries map[string][]string // package id -> primary ids, package-wide order
	subs      map[string][]string // primary id -> sub-line ids
}

func NewIndex(s *domain.Snapshot) *Index {
	idx := &Index{
		snap:      s,
		pkgPos:    make(map[string]int, len(s.Packages)),
		groupPos:  make(map[string]int, len(s.Groups)),
		itemPos:   make(map[string]int, len(s.LineItems)),
		groups:    make(map[string][]string),
		primaries: make(map[string][]string),
		subs:      make(map[string][]string),
	}

	for i, p := range s.Packages {
		idx.pkgPos[p.ID] = i
		idx.packages = append(idx.packages, p.ID)
	}
	slices.SortStableFunc(idx.packages, func(a, b string) int {
		return cmp.Compare(s.Packages[idx.pkgPos[a]].SortOrder, s.Packages[idx.pkgPos[b]].SortOrder)
	})

	if s.Grouped() {
		for i, g := range s.Groups {
			idx.groupPos[g.ID] = i
			idx.groups[g.PackageID] = append(idx.groups[g.PackageID], g.ID)
		}
		for _, ids := range idx.groups {
			slices.SortStableFunc(ids, func(a, b string) int {
				return cmp.Compare(s.Groups[idx.groupPos[a]].SortOrder, s.Groups[idx.groupPos[b]].SortOrder)
			})
		}
	}

	for i, li := range s.LineItems {
		idx.itemPos[li.ID] = i
		if li.IsPrimary() {
			idx.primaries[li.PackageID] = append(idx.primaries[li.PackageID], li.ID)
		} else {
			idx.subs[li.ParentID] = append(idx.subs[li.ParentID], li.ID)
		}
	}
	for _, ids := range idx.primaries {
		slices.SortStableFunc(ids, idx.comparePrimaries)
	}
	for _, ids := range idx.subs {
		slices.SortStableFunc(ids, idx.compareItems)
	}

	return idx
}

func (idx *Index) compareItems(a, b string) int {
	return cmp.Compare(idx.snap.LineItems[idx.itemPos[a]].SortOrder, idx.snap.LineItems[idx.itemPos[b]].SortOrder)
}

// comparePrimaries orders by group rank first when the quote is grouped.
// Lines whose group is unknown sort after every known group.
func (idx *Index) comparePrimaries(a, b string) int {
	if idx.snap.Grouped() {
		if c := cmp.Compare(idx.groupRank(a), idx.groupRank(b)); c != 0 {
			return c
		}
	}
	return idx.compareItems(a, b)
}

func (idx *Index) groupRank(itemID string) int {
	li := idx.snap.LineItems[idx.itemPos[itemID]]
	if rank := slices.Index(idx.groups[li.PackageID], li.GroupID); rank >= 0 {
		return rank
	}
	return math.MaxInt
}

func (idx *Index) Snapshot() *domain.Snapshot {
	return idx.snap
}

func (idx *Index) Package(id string) (domain.Package, bool) {
	i, ok := idx.pkgPos[id]
	if !ok {
		return domain.Package{}, false
	}
	return idx.snap.Packages[i], true
}

func (idx *Index) Group(id string) (domain.Group, bool) {
	i, ok := idx.groupPos[id]
	if !ok {
		return domain.Group{}, false
	}
	return idx.snap.Groups[i], true
}

func (idx *Index) Item(id string) (domain.LineItem, bool) {
	i, ok := idx.itemPos[id]
	if !ok {
		return domain.LineItem{}, false
	}
	return idx.snap.LineItems[i], true
}

// Packages returns package ids sorted by sortOrder.
func (idx *Index) Packages() []string {
	return idx.packages
}

// PackageAt resolves a 1-based package ordinal.
func (idx *Index) PackageAt(ordinal int) (string, bool) {
	return at(idx.packages, ordinal)
}

// Groups returns a package's group ids sorted by sortOrder.
func (idx *Index) Groups(packageID string) []string {
	return idx.groups[packageID]
}

// Primaries returns a package's primary lines in display order.
func (idx *Index) Primaries(packageID string) []string {
	return idx.primaries[packageID]
}

// PrimaryAt resolves a 1-based primary ordinal within a package.
func (idx *Index) PrimaryAt(packageID string, ordinal int) (string, bool) {
	return at(idx.primaries[packageID], ordinal)
}

// GroupPrimaries returns the primaries owned by one group, in display order.
func (idx *Index) GroupPrimaries(groupID string) []string {
	g, ok := idx.Group(groupID)
	if !ok {
		return nil
	}
	var out []string
	for _, id := range idx.primaries[g.PackageID] {
		if idx.snap.LineItems[idx.itemPos[id]].GroupID == groupID {
			out = append(out, id)
		}
	}
	return out
}

// SubLines returns a primary's sub-lines sorted by sortOrder.
func (idx *Index) SubLines(parentID string) []string {
	return idx.subs[parentID]
}

// HasSubLines reports whether any line names id as its parent.
func (idx *Index) HasSubLines(id string) bool {
	return len(idx.subs[id]) > 0
}

// PackageAddress returns the 1-based rank of a package.
func (idx *Index) PackageAddress(id string) (address.Address, bool) {
	n := slices.Index(idx.packages, id) + 1
	if n == 0 {
		return address.Address{}, false
	}
	return address.Address{Package: n}, true
}

// LineAddress derives a line's current address from sort order.
func (idx *Index) LineAddress(id string) (address.Address, bool) {
	li, ok := idx.Item(id)
	if !ok {
		return address.Address{}, false
	}

	primaryID := li.ID
	if !li.IsPrimary() {
		primaryID = li.ParentID
	}
	parent, ok := idx.Item(primaryID)
	if !ok {
		return address.Address{}, false
	}

	pkg, ok := idx.PackageAddress(parent.PackageID)
	if !ok {
		return address.Address{}, false
	}
	primary := slices.Index(idx.primaries[parent.PackageID], primaryID) + 1
	if primary == 0 {
		return address.Address{}, false
	}

	addr := address.Address{Package: pkg.Package, Primary: primary}
	if !li.IsPrimary() {
		addr.Sub = slices.Index(idx.subs[primaryID], li.ID) + 1
	}
	return addr, true
}

// Addresses projects every package and line id to its displayed address.
// Ids of entities that cannot be placed (dangling references) are omitted.
func Addresses(s *domain.Snapshot) map[string]string {
	idx := NewIndex(s)
	out := make(map[string]string, len(s.Packages)+len(s.LineItems))
	for i, id := range idx.packages {
		out[id] = address.Address{Package: i + 1}.String()
	}
	for _, li := range s.LineItems {
		if addr, ok := idx.LineAddress(li.ID); ok {
			out[li.ID] = addr.String()
		}
	}
	return out
}

func at(ids []string, ordinal int) (string, bool) {
	if ordinal < 1 || ordinal > len(ids) {
		return "", false
	}
	return ids[ordinal-1], true
}
