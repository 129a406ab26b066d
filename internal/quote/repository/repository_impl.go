package repository

import (
	"context"
	"sync/atomic"

	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
)

type repo struct {
	current atomic.Pointer[quotedomain.Snapshot]
}

// Provide returns an in-memory store seeded with initial. Readers always see
// a whole published snapshot.
func Provide(initial *quotedomain.Snapshot) quotedomain.Repository {
	r := &repo{}
	if initial == nil {
		initial = &quotedomain.Snapshot{Variant: quotedomain.VariantGrouped}
	}
	r.current.Store(initial)
	return r
}

func (r *repo) Load(ctx context.Context) (*quotedomain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.current.Load(), nil
}

func (r *repo) Publish(ctx context.Context, prev, next *quotedomain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if next == nil {
		return quotedomain.ErrConflict
	}
	if !r.current.CompareAndSwap(prev, next) {
		return quotedomain.ErrConflict
	}
	return nil
}
