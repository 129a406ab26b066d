package domain

import "strings"

// Variant selects how deep the container hierarchy is.
type Variant string

const (
	// VariantPackage is the two-level layout: Package -> LineItem.
	VariantPackage Variant = "package"
	// VariantGrouped is the three-level layout: Package -> Group -> LineItem.
	VariantGrouped Variant = "grouped"
)

// ParseVariant normalizes a configured variant name.
func ParseVariant(value string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(VariantPackage), "two_level", "flat":
		return VariantPackage, nil
	case string(VariantGrouped), "three_level", "":
		return VariantGrouped, nil
	default:
		return "", ErrVariantUnsupported
	}
}

type Package struct {
	ID            string  `json:"id" mapstructure:"id"`
	Name          string  `json:"name" mapstructure:"name"`
	DefaultMarkup float64 `json:"default_markup" mapstructure:"defaultMarkup"`
	SortOrder     int     `json:"sort_order" mapstructure:"sortOrder"`
}

type Group struct {
	ID               string `json:"id" mapstructure:"id"`
	PackageID        string `json:"package_id" mapstructure:"packageId"`
	Name             string `json:"name" mapstructure:"name"`
	SortOrder        int    `json:"sort_order" mapstructure:"sortOrder"`
	EquipmentHeading string `json:"equipment_heading,omitempty" mapstructure:"equipmentHeading"`
	Tag              string `json:"tag,omitempty" mapstructure:"tag"`
	EquipmentBullets string `json:"equipment_bullets,omitempty" mapstructure:"equipmentBullets"`
	Notes            string `json:"notes,omitempty" mapstructure:"notes"`
}

// LineItem is the atomic priced entity. A nil-equivalent ParentID ("") marks
// a primary line; sub-lines reference a primary in the same container.
type LineItem struct {
	ID        string `json:"id" mapstructure:"id"`
	PackageID string `json:"package_id" mapstructure:"packageId"`
	GroupID   string `json:"group_id,omitempty" mapstructure:"groupId"`
	ParentID  string `json:"parent_id,omitempty" mapstructure:"parentId"`

	Quantity         float64 `json:"qty" mapstructure:"qty"`
	SupplierID       string  `json:"supplier_id,omitempty" mapstructure:"supplierId"`
	ManufacturerID   string  `json:"manufacturer_id,omitempty" mapstructure:"manufacturerId"`
	EquipmentTypeID  string  `json:"equipment_type_id,omitempty" mapstructure:"equipmentTypeId"`
	Model            string  `json:"model,omitempty" mapstructure:"model"`
	ListPrice        float64 `json:"list_price" mapstructure:"listPrice"`
	PriceIncreasePct float64 `json:"price_increase_pct" mapstructure:"priceIncrease"`
	Multiplier       float64 `json:"multiplier" mapstructure:"multiplier"`
	PayPct           float64 `json:"pay_pct" mapstructure:"pay"`
	Freight          float64 `json:"freight" mapstructure:"freight"`
	Markup           float64 `json:"markup" mapstructure:"markup"`

	Shorthand string `json:"shorthand,omitempty" mapstructure:"shorthand"`
	Heading   string `json:"heading,omitempty" mapstructure:"heading"`
	Tag       string `json:"tag,omitempty" mapstructure:"tag"`
	Bullets   string `json:"bullets,omitempty" mapstructure:"bullets"`
	Notes     string `json:"notes,omitempty" mapstructure:"notes"`

	SortOrder int `json:"sort_order" mapstructure:"sortOrder"`
}

// IsPrimary reports whether the line has no parent.
func (li LineItem) IsPrimary() bool {
	return li.ParentID == ""
}

type ProjectInfo struct {
	ProjectName     string `json:"project_name" mapstructure:"projectName"`
	ProjectNumber   string `json:"project_number" mapstructure:"projectNumber"`
	BidDate         string `json:"bid_date" mapstructure:"bidDate"`
	CustomerName    string `json:"customer_name" mapstructure:"customerName"`
	Attention       string `json:"attention" mapstructure:"attention"`
	EngineerCompany string `json:"engineer_company" mapstructure:"engineerCompany"`
	Location        string `json:"location" mapstructure:"location"`
	QuoteNotes      string `json:"quote_notes" mapstructure:"quoteNotes"`
	Addendums       string `json:"addendums" mapstructure:"addendums"`
	SalesRep        string `json:"sales_rep" mapstructure:"salesRep"`
}

// Reference is a lookup row (supplier, manufacturer, equipment type).
type Reference struct {
	ID   string `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`
}

// Snapshot is an immutable view of the whole quote. Operations never mutate
// a published snapshot; they return a new one. Slice order is insertion order
// and breaks sortOrder ties.
type Snapshot struct {
	Version        uint64      `json:"version"`
	Variant        Variant     `json:"variant"`
	Project        ProjectInfo `json:"project"`
	Suppliers      []Reference `json:"suppliers"`
	Manufacturers  []Reference `json:"manufacturers"`
	EquipmentTypes []Reference `json:"equipment_types"`
	Packages       []Package   `json:"packages"`
	Groups         []Group     `json:"groups"`
	LineItems      []LineItem  `json:"line_items"`
}

// Clone returns a copy whose slices can be modified without touching s.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Suppliers = append([]Reference(nil), s.Suppliers...)
	out.Manufacturers = append([]Reference(nil), s.Manufacturers...)
	out.EquipmentTypes = append([]Reference(nil), s.EquipmentTypes...)
	out.Packages = append([]Package(nil), s.Packages...)
	out.Groups = append([]Group(nil), s.Groups...)
	out.LineItems = append([]LineItem(nil), s.LineItems...)
	return &out
}

// Grouped reports whether the snapshot uses the three-level layout.
func (s *Snapshot) Grouped() bool {
	return s.Variant == VariantGrouped
}
