package reference

import (
	"context"
	"testing"

	quotedomain "github.com/jacobe603/quote-builder/internal/quote/domain"
	quoterepository "github.com/jacobe603/quote-builder/internal/quote/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrdersByName(t *testing.T) {
	snap := &quotedomain.Snapshot{
		Manufacturers: []quotedomain.Reference{
			{ID: "mfr2", Name: "Tridium"},
			{ID: "mfr1", Name: "AAON"},
			{ID: "mfr3", Name: "daikin"},
		},
	}
	repo := NewRepository(quoterepository.Provide(snap))

	got, err := repo.ListManufacturers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"mfr1", "mfr3", "mfr2"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "mfr2", snap.Manufacturers[0].ID, "snapshot must not be reordered")

	suppliers, err := repo.ListSuppliers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, suppliers)
	assert.Empty(t, suppliers)
}
