package domain

import "github.com/shopspring/decimal"

// Financials are the derived money figures of one line, rounded to cents.
// They are recomputed from the stored inputs and never stored.
type Financials struct {
	MfgNet          decimal.Decimal `json:"mfg_net"`
	MfgCommission   decimal.Decimal `json:"mfg_commission"`
	TotalNet        decimal.Decimal `json:"total_net"`
	BidPrice        decimal.Decimal `json:"bid_price"`
	SalesCommission decimal.Decimal `json:"sales_commission"`
}

type Totals struct {
	TotalNet        decimal.Decimal `json:"total_net"`
	BidPrice        decimal.Decimal `json:"bid_price"`
	SalesCommission decimal.Decimal `json:"sales_commission"`
}

// Rollup keys every derived figure of a snapshot by entity id.
type Rollup struct {
	Version  uint64                `json:"version"`
	Lines    map[string]Financials `json:"lines"`
	Groups   map[string]Totals     `json:"groups,omitempty"`
	Packages map[string]Totals     `json:"packages"`
	Quote    Totals                `json:"quote"`
}

type LineView struct {
	LineItem
	Address    string     `json:"address"`
	Financials Financials `json:"financials"`
	SubLines   []LineView `json:"sub_lines,omitempty"`
}

type GroupView struct {
	Group
	Totals Totals     `json:"totals"`
	Lines  []LineView `json:"lines"`
}

type PackageView struct {
	Package
	Address string      `json:"address"`
	Totals  Totals      `json:"totals"`
	Groups  []GroupView `json:"groups,omitempty"`
	Lines   []LineView  `json:"lines,omitempty"`
}

// QuoteView is the sorted, addressed tree the UI renders.
type QuoteView struct {
	Version        uint64        `json:"version"`
	Variant        Variant       `json:"variant"`
	Project        ProjectInfo   `json:"project"`
	Suppliers      []Reference   `json:"suppliers"`
	Manufacturers  []Reference   `json:"manufacturers"`
	EquipmentTypes []Reference   `json:"equipment_types"`
	Packages       []PackageView `json:"packages"`
	Totals         Totals        `json:"totals"`
}
