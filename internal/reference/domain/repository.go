package domain

import (
	"context"

	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
)

// Repository lists the lookup rows line items reference.
type Repository interface {
	ListSuppliers(ctx context.Context) ([]quotedomain.Reference, error)
	ListManufacturers(ctx context.Context) ([]quotedomain.Reference, error)
	ListEquipmentTypes(ctx context.Context) ([]quotedomain.Reference, error)
}
