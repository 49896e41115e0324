package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
packs:
  - name: Basic
    description: One month
    sku: basic-monthly
    price: "9.99"
    validity_months: 1
  - name: Pro
    sku: pro-yearly
    price: "99"
    validity_months: 12
`

func TestParsePacks(t *testing.T) {
	packs, err := ParsePacks(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, packs, 2)

	assert.Equal(t, "basic-monthly", packs[0].SKU)
	assert.Equal(t, 12, packs[1].ValidityMonths)

	price, err := packs[0].DecimalPrice()
	require.NoError(t, err)
	assert.Equal(t, "9.99", price.String())
}

func TestParsePacks_Empty(t *testing.T) {
	packs, err := ParsePacks(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, packs)
}

func TestParsePacks_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown field", "packs:\n  - name: A\n    sku: a\n    price: \"1\"\n    colour: red\n"},
		{"missing sku", "packs:\n  - name: A\n    price: \"1\"\n"},
		{"duplicate sku", "packs:\n  - {name: A, sku: a, price: \"1\"}\n  - {name: B, sku: a, price: \"2\"}\n"},
		{"bad price", "packs:\n  - {name: A, sku: a, price: cheap}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePacks(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestLoadPacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	packs, err := LoadPacks(path)
	require.NoError(t, err)
	assert.Len(t, packs, 2)

	_, err = LoadPacks(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
