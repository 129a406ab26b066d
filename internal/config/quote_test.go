package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewQuoteDefaultsHolder_FallsBackWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	holder, err := NewQuoteDefaultsHolder(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DefaultQuoteDefaults(), holder.Get())
}

func TestNewQuoteDefaultsHolder_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	body := []byte("quote:\n  defaultMarkup: 1.2\n  newLine:\n    qty: 2\n    shorthand: Unit\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quote.yml"), body, 0o600))

	holder, err := NewQuoteDefaultsHolder(zap.NewNop())
	require.NoError(t, err)

	got := holder.Get()
	assert.Equal(t, 1.2, got.DefaultMarkup)
	assert.Equal(t, 2.0, got.NewLine.Quantity)
	assert.Equal(t, "Unit", got.NewLine.Shorthand)
	assert.Equal(t, "New Sub Item", got.NewSubLine.Shorthand)
	assert.Equal(t, 1.35, got.NewPackage.DefaultMarkup)
}

func TestReadQuoteDefaults_RejectsInvalidMarkup(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  any
	}{
		{name: "zero markup", key: "quote.defaultMarkup", val: 0},
		{name: "negative package markup", key: "quote.newPackage.defaultMarkup", val: -1},
		{name: "zero quantity", key: "quote.newSubLine.qty", val: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := viper.New()
			setQuoteDefaults(v, DefaultQuoteDefaults())
			v.Set(tc.key, tc.val)

			_, err := readQuoteDefaults(v)
			if err == nil {
				t.Fatalf("expected validation error for %s", tc.key)
			}
		})
	}
}

func TestNewStaticQuoteDefaults(t *testing.T) {
	d := DefaultQuoteDefaults()
	d.NewLine.Shorthand = "Line"
	assert.Equal(t, "Line", NewStaticQuoteDefaults(d).Get().NewLine.Shorthand)
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
