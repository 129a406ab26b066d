package tree

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jacobe603/quote-builder/internal/quote/address"
	"github.com/jacobe603/quote-builder/internal/quote/domain"
)

// Defaults seed newly created entities.
type Defaults struct {
	Markup           float64
	Quantity         float64
	LineShorthand    string
	SubLineShorthand string
}

func DefaultDefaults() Defaults {
	return Defaults{
		Markup:           1.35,
		Quantity:         1,
		LineShorthand:    "New Item",
		SubLineShorthand: "New Sub Item",
	}
}

// Every operation below is copy-on-write: the input snapshot is never
// modified. On error the input pointer is returned unchanged.

func AddPackage(s *domain.Snapshot, id, name string, markup float64) (*domain.Snapshot, domain.Package, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, domain.Package{}, domain.ErrInvalidName
	}

	maxSort := 0
	for _, p := range s.Packages {
		maxSort = max(maxSort, p.SortOrder)
	}
	pkg := domain.Package{ID: id, Name: name, DefaultMarkup: markup, SortOrder: maxSort + 1}

	next := bump(s)
	next.Packages = append(next.Packages, pkg)
	return next, pkg, nil
}

func UpdatePackage(s *domain.Snapshot, id string, req domain.UpdatePackageRequest) (*domain.Snapshot, domain.Package, error) {
	idx := NewIndex(s)
	pos, ok := idx.pkgPos[id]
	if !ok {
		return s, domain.Package{}, domain.ErrPackageNotFound
	}

	pkg := s.Packages[pos]
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return s, domain.Package{}, domain.ErrInvalidName
		}
		pkg.Name = name
	}
	if req.DefaultMarkup != nil {
		pkg.DefaultMarkup = *req.DefaultMarkup
	}

	next := bump(s)
	next.Packages[pos] = pkg
	return next, pkg, nil
}

// MovePackage reinserts a package at the clamped ordinal and renumbers every
// package densely from 1.
func MovePackage(s *domain.Snapshot, id string, ordinal int) (*domain.Snapshot, error) {
	idx := NewIndex(s)
	if _, ok := idx.pkgPos[id]; !ok {
		return s, domain.ErrPackageNotFound
	}

	order := slices.Clone(idx.packages)
	order = slices.DeleteFunc(order, func(v string) bool { return v == id })
	target := min(max(ordinal-1, 0), len(order))
	order = slices.Insert(order, target, id)

	next := bump(s)
	for rank, pkgID := range order {
		next.Packages[idx.pkgPos[pkgID]].SortOrder = rank + 1
	}
	return next, nil
}

func AddGroup(s *domain.Snapshot, id, packageID, name string) (*domain.Snapshot, domain.Group, error) {
	if !s.Grouped() {
		return s, domain.Group{}, domain.ErrVariantUnsupported
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return s, domain.Group{}, domain.ErrInvalidName
	}
	idx := NewIndex(s)
	if _, ok := idx.Package(packageID); !ok {
		return s, domain.Group{}, domain.ErrPackageNotFound
	}

	maxSort := 0
	for _, gid := range idx.Groups(packageID) {
		g, _ := idx.Group(gid)
		maxSort = max(maxSort, g.SortOrder)
	}
	group := domain.Group{ID: id, PackageID: packageID, Name: name, SortOrder: maxSort + 1}

	next := bump(s)
	next.Groups = append(next.Groups, group)
	return next, group, nil
}

func UpdateGroup(s *domain.Snapshot, id string, req domain.UpdateGroupRequest) (*domain.Snapshot, domain.Group, error) {
	if !s.Grouped() {
		return s, domain.Group{}, domain.ErrVariantUnsupported
	}
	idx := NewIndex(s)
	pos, ok := idx.groupPos[id]
	if !ok {
		return s, domain.Group{}, domain.ErrGroupNotFound
	}

	g := s.Groups[pos]
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return s, domain.Group{}, domain.ErrInvalidName
		}
		g.Name = name
	}
	setString(&g.EquipmentHeading, req.EquipmentHeading)
	setString(&g.Tag, req.Tag)
	setString(&g.EquipmentBullets, req.EquipmentBullets)
	setString(&g.Notes, req.Notes)

	next := bump(s)
	next.Groups[pos] = g
	return next, g, nil
}

// DeleteContainer removes a package or a group together with every line it
// owns, directly or through a group, and the sub-lines of those lines.
func DeleteContainer(s *domain.Snapshot, id string) (*domain.Snapshot, error) {
	idx := NewIndex(s)

	var owned func(li domain.LineItem) bool
	next := bump(s)
	switch {
	case hasKey(idx.pkgPos, id):
		next.Packages = slices.DeleteFunc(next.Packages, func(p domain.Package) bool { return p.ID == id })
		next.Groups = slices.DeleteFunc(next.Groups, func(g domain.Group) bool { return g.PackageID == id })
		owned = func(li domain.LineItem) bool { return li.PackageID == id }
	case hasKey(idx.groupPos, id):
		next.Groups = slices.DeleteFunc(next.Groups, func(g domain.Group) bool { return g.ID == id })
		owned = func(li domain.LineItem) bool { return li.GroupID == id }
	default:
		return s, domain.ErrContainerNotFound
	}

	removed := make(map[string]struct{})
	for _, li := range s.LineItems {
		if owned(li) {
			removed[li.ID] = struct{}{}
		}
	}
	next.LineItems = slices.DeleteFunc(next.LineItems, func(li domain.LineItem) bool {
		if _, ok := removed[li.ID]; ok {
			return true
		}
		_, orphaned := removed[li.ParentID]
		return orphaned
	})
	return next, nil
}

// AddPrimaryLine appends a parentless line to a container. The container is
// a group in the grouped variant (a package id selects its first group) and
// a package otherwise.
func AddPrimaryLine(s *domain.Snapshot, id, containerID string, d Defaults) (*domain.Snapshot, domain.LineItem, error) {
	idx := NewIndex(s)

	pkgID, groupID, err := resolveContainer(idx, containerID)
	if err != nil {
		return s, domain.LineItem{}, err
	}
	pkg, _ := idx.Package(pkgID)

	siblings := idx.Primaries(pkgID)
	if s.Grouped() {
		siblings = idx.GroupPrimaries(groupID)
	}

	markup := pkg.DefaultMarkup
	if markup == 0 {
		markup = d.Markup
	}
	item := domain.LineItem{
		ID:        id,
		PackageID: pkgID,
		GroupID:   groupID,
		Quantity:  d.Quantity,
		Markup:    markup,
		Shorthand: d.LineShorthand,
		SortOrder: maxSortOrder(idx, siblings) + 1,
	}

	next := bump(s)
	next.LineItems = append(next.LineItems, item)
	return next, item, nil
}

// AddSubLine appends a sub-line under a primary line. Supplier, manufacturer
// and pricing rates are inherited from the parent.
func AddSubLine(s *domain.Snapshot, id, parentID string, d Defaults) (*domain.Snapshot, domain.LineItem, error) {
	idx := NewIndex(s)
	parent, ok := idx.Item(parentID)
	if !ok || !parent.IsPrimary() {
		return s, domain.LineItem{}, domain.ErrParentNotFound
	}

	item := domain.LineItem{
		ID:               id,
		PackageID:        parent.PackageID,
		GroupID:          parent.GroupID,
		ParentID:         parent.ID,
		Quantity:         d.Quantity,
		SupplierID:       parent.SupplierID,
		ManufacturerID:   parent.ManufacturerID,
		PriceIncreasePct: parent.PriceIncreasePct,
		Multiplier:       parent.Multiplier,
		Markup:           parent.Markup,
		Shorthand:        d.SubLineShorthand,
		SortOrder:        maxSortOrder(idx, idx.SubLines(parentID)) + 1,
	}

	next := bump(s)
	next.LineItems = append(next.LineItems, item)
	return next, item, nil
}

// UpdateLineItem applies a field edit. Structural fields are owned by the
// add and move operations and cannot be edited here.
func UpdateLineItem(s *domain.Snapshot, id string, req domain.UpdateLineItemRequest) (*domain.Snapshot, domain.LineItem, error) {
	idx := NewIndex(s)
	pos, ok := idx.itemPos[id]
	if !ok {
		return s, domain.LineItem{}, domain.ErrLineItemNotFound
	}

	li := s.LineItems[pos]
	setFloat(&li.Quantity, req.Quantity)
	setString(&li.SupplierID, req.SupplierID)
	setString(&li.ManufacturerID, req.ManufacturerID)
	setString(&li.EquipmentTypeID, req.EquipmentTypeID)
	setString(&li.Model, req.Model)
	setFloat(&li.ListPrice, req.ListPrice)
	setFloat(&li.PriceIncreasePct, req.PriceIncreasePct)
	setFloat(&li.Multiplier, req.Multiplier)
	setFloat(&li.PayPct, req.PayPct)
	setFloat(&li.Freight, req.Freight)
	setFloat(&li.Markup, req.Markup)
	setString(&li.Shorthand, req.Shorthand)
	setString(&li.Heading, req.Heading)
	setString(&li.Tag, req.Tag)
	setString(&li.Bullets, req.Bullets)
	setString(&li.Notes, req.Notes)

	next := bump(s)
	next.LineItems[pos] = li
	return next, li, nil
}

// DeleteLineItem removes a line and, when it is a primary, its sub-lines.
func DeleteLineItem(s *domain.Snapshot, id string) (*domain.Snapshot, error) {
	idx := NewIndex(s)
	if _, ok := idx.Item(id); !ok {
		return s, domain.ErrLineItemNotFound
	}

	next := bump(s)
	next.LineItems = slices.DeleteFunc(next.LineItems, func(li domain.LineItem) bool {
		return li.ID == id || li.ParentID == id
	})
	return next, nil
}

// MoveLineItem relocates a line to the position named by a typed address.
//
// "p.n" makes the line the primary with sortOrder n in package p; "p.n.m"
// makes it a sub-line of the n-th primary of package p with sortOrder m.
// Sort orders take the typed ordinal literally and are not compacted, so
// siblings may end up sharing a sortOrder. Ordinals are resolved against
// the snapshot's current sort order. Any rejection leaves s untouched.
func MoveLineItem(s *domain.Snapshot, id, raw string) (*domain.Snapshot, error) {
	idx := NewIndex(s)
	item, ok := idx.Item(id)
	if !ok {
		return s, domain.ErrLineItemNotFound
	}

	addr, err := address.ParseLine(raw)
	if err != nil {
		return s, err
	}

	pkgID, ok := idx.PackageAt(addr.Package)
	if !ok {
		return s, fmt.Errorf("package %d: %w", addr.Package, domain.ErrTargetNotFound)
	}
	if s.Grouped() && len(idx.Groups(pkgID)) == 0 {
		return s, domain.ErrNoGroupInPackage
	}

	if current, ok := idx.LineAddress(id); ok && current == addr {
		return s, nil
	}

	if addr.HasSub() {
		return moveUnder(s, idx, item, pkgID, addr)
	}
	return moveToPrimary(s, idx, item, pkgID, addr)
}

func moveUnder(s *domain.Snapshot, idx *Index, item domain.LineItem, pkgID string, addr address.Address) (*domain.Snapshot, error) {
	parentID, ok := idx.PrimaryAt(pkgID, addr.Primary)
	if !ok {
		return s, fmt.Errorf("line %d of package %d: %w", addr.Primary, addr.Package, domain.ErrTargetNotFound)
	}
	if parentID == item.ID || idx.HasSubLines(item.ID) {
		return s, domain.ErrNestingDepth
	}
	parent, _ := idx.Item(parentID)

	next := bump(s)
	li := &next.LineItems[idx.itemPos[item.ID]]
	li.ParentID = parent.ID
	li.PackageID = parent.PackageID
	li.GroupID = parent.GroupID
	li.SortOrder = addr.Sub
	return next, nil
}

func moveToPrimary(s *domain.Snapshot, idx *Index, item domain.LineItem, pkgID string, addr address.Address) (*domain.Snapshot, error) {
	groupID := ""
	if s.Grouped() {
		groupID = idx.Groups(pkgID)[0]
		if item.PackageID == pkgID && slices.Contains(idx.Groups(pkgID), item.GroupID) {
			groupID = item.GroupID
		}
	}

	next := bump(s)
	li := &next.LineItems[idx.itemPos[item.ID]]
	li.ParentID = ""
	li.PackageID = pkgID
	li.GroupID = groupID
	li.SortOrder = addr.Primary

	if item.PackageID != pkgID || item.GroupID != groupID {
		for _, subID := range idx.SubLines(item.ID) {
			sub := &next.LineItems[idx.itemPos[subID]]
			sub.PackageID = pkgID
			sub.GroupID = groupID
		}
	}
	return next, nil
}

func UpdateProjectInfo(s *domain.Snapshot, info domain.ProjectInfo) *domain.Snapshot {
	next := bump(s)
	next.Project = info
	return next
}

func resolveContainer(idx *Index, containerID string) (string, string, error) {
	if !idx.snap.Grouped() {
		if _, ok := idx.Package(containerID); !ok {
			return "", "", domain.ErrContainerNotFound
		}
		return containerID, "", nil
	}

	if g, ok := idx.Group(containerID); ok {
		if _, ok := idx.Package(g.PackageID); !ok {
			return "", "", domain.ErrPackageNotFound
		}
		return g.PackageID, g.ID, nil
	}
	if _, ok := idx.Package(containerID); ok {
		groups := idx.Groups(containerID)
		if len(groups) == 0 {
			return "", "", domain.ErrNoGroupInPackage
		}
		return containerID, groups[0], nil
	}
	return "", "", domain.ErrContainerNotFound
}

func maxSortOrder(idx *Index, ids []string) int {
	out := 0
	for _, id := range ids {
		li, _ := idx.Item(id)
		out = max(out, li.SortOrder)
	}
	return out
}

func bump(s *domain.Snapshot) *domain.Snapshot {
	next := s.Clone()
	next.Version = s.Version + 1
	return next
}

func hasKey(m map[string]int, key string) bool {
	_, ok := m[key]
	return ok
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
