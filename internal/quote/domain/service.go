package domain

import (
	"context"
	"errors"
)

type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	View(ctx context.Context) (*QuoteView, error)
	Totals(ctx context.Context) (*Rollup, error)

	UpdateProjectInfo(ctx context.Context, info ProjectInfo) (*Snapshot, error)

	AddPackage(ctx context.Context, req AddPackageRequest) (*Package, error)
	UpdatePackage(ctx context.Context, id string, req UpdatePackageRequest) (*Package, error)
	DeletePackage(ctx context.Context, id string) (*Snapshot, error)
	MovePackage(ctx context.Context, id string, ordinal int) (*Snapshot, error)

	AddGroup(ctx context.Context, packageID string, req AddGroupRequest) (*Group, error)
	UpdateGroup(ctx context.Context, id string, req UpdateGroupRequest) (*Group, error)
	DeleteGroup(ctx context.Context, id string) (*Snapshot, error)

	AddPrimaryLine(ctx context.Context, containerID string) (*LineItem, error)
	AddSubLine(ctx context.Context, parentID string) (*LineItem, error)
	UpdateLineItem(ctx context.Context, id string, req UpdateLineItemRequest) (*LineItem, error)
	DeleteLineItem(ctx context.Context, id string) (*Snapshot, error)
	MoveLineItem(ctx context.Context, id string, address string) (*Snapshot, error)
}

type AddPackageRequest struct {
	Name          string   `json:"name"`
	DefaultMarkup *float64 `json:"default_markup"`
}

type UpdatePackageRequest struct {
	Name          *string  `json:"name"`
	DefaultMarkup *float64 `json:"default_markup"`
}

type AddGroupRequest struct {
	Name string `json:"name"`
}

type UpdateGroupRequest struct {
	Name             *string `json:"name"`
	EquipmentHeading *string `json:"equipment_heading"`
	Tag              *string `json:"tag"`
	EquipmentBullets *string `json:"equipment_bullets"`
	Notes            *string `json:"notes"`
}

// UpdateLineItemRequest is a partial edit; nil fields are left untouched.
type UpdateLineItemRequest struct {
	Quantity         *float64 `json:"qty"`
	SupplierID       *string  `json:"supplier_id"`
	ManufacturerID   *string  `json:"manufacturer_id"`
	EquipmentTypeID  *string  `json:"equipment_type_id"`
	Model            *string  `json:"model"`
	ListPrice        *float64 `json:"list_price"`
	PriceIncreasePct *float64 `json:"price_increase_pct"`
	Multiplier       *float64 `json:"multiplier"`
	PayPct           *float64 `json:"pay_pct"`
	Freight          *float64 `json:"freight"`
	Markup           *float64 `json:"markup"`
	Shorthand        *string  `json:"shorthand"`
	Heading          *string  `json:"heading"`
	Tag              *string  `json:"tag"`
	Bullets          *string  `json:"bullets"`
	Notes            *string  `json:"notes"`
}

var (
	ErrInvalidAddress     = errors.New("invalid_address")
	ErrPackageNotFound    = errors.New("package_not_found")
	ErrGroupNotFound      = errors.New("group_not_found")
	ErrContainerNotFound  = errors.New("container_not_found")
	ErrLineItemNotFound   = errors.New("line_item_not_found")
	ErrParentNotFound     = errors.New("parent_not_found")
	ErrTargetNotFound     = errors.New("target_not_found")
	ErrNoGroupInPackage   = errors.New("no_group_in_package")
	ErrNestingDepth       = errors.New("nesting_depth_exceeded")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidOrdinal     = errors.New("invalid_ordinal")
	ErrVariantUnsupported = errors.New("variant_unsupported")
	ErrConflict           = errors.New("conflict")
)

var sentinels = []error{
	ErrInvalidAddress, ErrPackageNotFound, ErrGroupNotFound, ErrContainerNotFound,
	ErrLineItemNotFound, ErrParentNotFound, ErrTargetNotFound, ErrNoGroupInPackage,
	ErrNestingDepth, ErrInvalidName, ErrInvalidOrdinal, ErrVariantUnsupported, ErrConflict,
}

// Code returns the sentinel code carried by err, or "unknown".
func Code(err error) string {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "unknown"
}

// IsNotFound reports whether err names a missing reference.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrPackageNotFound),
		errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrContainerNotFound),
		errors.Is(err, ErrLineItemNotFound),
		errors.Is(err, ErrParentNotFound),
		errors.Is(err, ErrTargetNotFound):
		return true
	default:
		return false
	}
}
