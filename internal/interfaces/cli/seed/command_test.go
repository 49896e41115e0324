package seed

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	seedfile "github.com/licensehub/licensehub/internal/infrastructure/seed"
)

func TestToItems(t *testing.T) {
	items, err := toItems([]seedfile.PackSeed{
		{Name: "Basic", SKU: "basic", Price: "9.99", ValidityMonths: 1},
		{Name: "Pro", SKU: "pro", Price: "19", ValidityMonths: 12, Description: "everything"},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, "everything", items[1].Description)
}

func TestToItems_BadPrice(t *testing.T) {
	_, err := toItems([]seedfile.PackSeed{{Name: "Bad", SKU: "bad", Price: "x", ValidityMonths: 1}})
	assert.Error(t, err)
}
