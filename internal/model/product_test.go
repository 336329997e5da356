package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), "category %s", c)
	}
	assert.False(t, Category("Groceries").Valid())
	assert.False(t, Category("").Valid())
	assert.False(t, Category("electronics").Valid(), "categories are case-sensitive")
}

func TestPrice_JSONRoundTrip(t *testing.T) {
	// The persisted literal must survive untouched: 2.00 stays 2.00,
	// not 2 and not 2.0000000001.
	cases := []string{"2.00", "0.10", "1999.99", "0"}
	for _, tc := range cases {
		p, err := NewPrice(tc)
		require.NoError(t, err)

		data, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Equal(t, tc, string(data))

		var back Price
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Zero(t, p.Cmp(back))
	}
}

func TestPrice_UnmarshalQuotedDecimal(t *testing.T) {
	var p Price
	require.NoError(t, json.Unmarshal([]byte(`"12.25"`), &p))
	assert.Equal(t, "12.25", p.String())
}

func TestPrice_UnmarshalRejectsGarbage(t *testing.T) {
	var p Price
	assert.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &p))
}

func TestPrice_YAMLPreservesLiteral(t *testing.T) {
	var f Fixture
	doc := "sku: X\nname: X\ncategory: Hardware\nprice: 2.00\nstock: 1\nlowStockThreshold: 0\n"
	require.NoError(t, yaml.Unmarshal([]byte(doc), &f))
	assert.Equal(t, "2.00", f.Price.String())
}

func TestPrice_Negative(t *testing.T) {
	assert.True(t, MustPrice("-0.01").Negative())
	assert.False(t, MustPrice("0").Negative())
	assert.False(t, MustPrice("3.50").Negative())
}

func TestProduct_LowStock(t *testing.T) {
	p := Product{Stock: 5, LowStockThreshold: 5}
	assert.True(t, p.LowStock(), "stock == threshold is low stock")

	p.Stock = 6
	assert.False(t, p.LowStock())
}

func TestProduct_JSONShape(t *testing.T) {
	// The wire shape is the application's persisted format; key names
	// are load-bearing.
	p := Product{
		ID:                "1700000000000",
		SKU:               "SKU-1",
		Name:              "Widget",
		Category:          CategoryHardware,
		Price:             MustPrice("9.99"),
		Stock:             3,
		LowStockThreshold: 5,
		CreatedAt:         "2026-01-02T03:04:05.000Z",
		UpdatedAt:         "2026-01-02T03:04:05.000Z",
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"id", "sku", "name", "category", "price", "stock", "lowStockThreshold", "createdAt", "updatedAt"} {
		assert.Contains(t, m, key)
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	assert.Equal(t, "2026-01-02T03:04:05.678Z", Timestamp(ts))

	// Non-UTC input normalizes to UTC: same instant, same rendering.
	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, "2026-01-02T03:04:05.678Z", Timestamp(ts.In(est)))
}
