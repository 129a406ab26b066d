package reference

import (
	"cmp"
	"context"
	"slices"
	"strings"

	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
	"github.com/jacobe603/quote-builder/internal/reference/domain"
)

type repository struct {
	quotes quotedomain.Repository
}

func NewRepository(quotes quotedomain.Repository) domain.Repository {
	return &repository{quotes: quotes}
}

func (r *repository) ListSuppliers(ctx context.Context) ([]quotedomain.Reference, error) {
	return r.list(ctx, func(s *quotedomain.Snapshot) []quotedomain.Reference { return s.Suppliers })
}

func (r *repository) ListManufacturers(ctx context.Context) ([]quotedomain.Reference, error) {
	return r.list(ctx, func(s *quotedomain.Snapshot) []quotedomain.Reference { return s.Manufacturers })
}

func (r *repository) ListEquipmentTypes(ctx context.Context) ([]quotedomain.Reference, error) {
	return r.list(ctx, func(s *quotedomain.Snapshot) []quotedomain.Reference { return s.EquipmentTypes })
}

// list returns a name-ordered copy of one lookup table.
func (r *repository) list(ctx context.Context, pick func(*quotedomain.Snapshot) []quotedomain.Reference) ([]quotedomain.Reference, error) {
	snap, err := r.quotes.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := slices.Clone(pick(snap))
	if out == nil {
		out = []quotedomain.Reference{}
	}
	slices.SortStableFunc(out, func(a, b quotedomain.Reference) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out, nil
}
