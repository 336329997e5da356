package ui

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/shelfcheck/internal/model"
)

func TestFormatStock(t *testing.T) {
	assert.Equal(t, "0", FormatStock(0))
	assert.Equal(t, "12", FormatStock(12))
	assert.Equal(t, "1000", FormatStock(1000), "no thousands separators")
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$24.99", FormatPrice(model.MustPrice("24.99")))
	assert.Equal(t, "$2.00", FormatPrice(model.MustPrice("2")))
	assert.Equal(t, "$2.00", FormatPrice(model.MustPrice("2.0")))
	assert.Equal(t, "$0.00", FormatPrice(model.MustPrice("0")))
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":      "$0.00",
		"56.75":  "$56.75",
		"199":    "$199.00",
		"0.3":    "$0.30",
		"1999.9": "$1999.90",
	}
	for in, want := range cases {
		d, _, err := apd.NewFromString(in)
		assert.NoError(t, err)
		assert.Equal(t, want, FormatAmount(d), "input %s", in)
	}
}
