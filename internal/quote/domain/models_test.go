package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	cases := map[string]Variant{
		"":             VariantGrouped,
		"grouped":      VariantGrouped,
		" Three_Level": VariantGrouped,
		"package":      VariantPackage,
		"FLAT":         VariantPackage,
		"two_level":    VariantPackage,
	}
	for in, want := range cases {
		got, err := ParseVariant(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseVariant("nested")
	assert.ErrorIs(t, err, ErrVariantUnsupported)
}

func TestVariantValues(t *testing.T) {
	// Both are constants, so they can seed other constant declarations.
	const flat, nested = VariantPackage, VariantGrouped
	assert.Equal(t, Variant("package"), flat)
	assert.Equal(t, Variant("grouped"), nested)
}
