package repository

import (
	"context"
	"testing"

	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	initial := &quotedomain.Snapshot{Version: 1, Variant: quotedomain.VariantPackage}
	r := Provide(initial)

	current, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, initial, current)

	next := &quotedomain.Snapshot{Version: 2}
	require.NoError(t, r.Publish(ctx, current, next))

	stale := &quotedomain.Snapshot{Version: 2}
	assert.ErrorIs(t, r.Publish(ctx, current, stale), quotedomain.ErrConflict)

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, next, got)
}

func TestProvide_DefaultsToEmptyGroupedQuote(t *testing.T) {
	got, err := Provide(nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, quotedomain.VariantGrouped, got.Variant)
	assert.Empty(t, got.LineItems)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Provide(nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
