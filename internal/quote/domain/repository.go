package domain

import "context"

// Repository holds the current published snapshot.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	// Publish replaces prev with next atomically. It fails with ErrConflict
	// when prev is no longer the current snapshot.
	Publish(ctx context.Context, prev, next *Snapshot) error
}
