package ui

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/shelfcheck/internal/model"
)

// Rendering assumptions of the application, kept in one place so a UI
// rendering change requires one edit here, not one per assertion:
//   - stock renders as a plain decimal integer, no thousands separators
//   - prices render with a leading "$" and exactly two decimals

var formatCtx = apd.BaseContext.WithPrecision(34)

// FormatStock renders a stock count the way the table cell does.
func FormatStock(stock int) string {
	return strconv.Itoa(stock)
}

// FormatCount renders a dashboard count (total products, low-stock items).
func FormatCount(n int) string {
	return strconv.Itoa(n)
}

// FormatPrice renders a product price the way the price cell does.
func FormatPrice(p model.Price) string {
	return FormatAmount(p.Decimal())
}

// FormatAmount renders any decimal amount as currency: "$" plus exactly
// two decimals.
func FormatAmount(d *apd.Decimal) string {
	var q apd.Decimal
	// Quantize to cents; totals computed from two-decimal prices and
	// integer stocks never round here.
	if _, err := formatCtx.Quantize(&q, d, -2); err != nil {
		return "$" + d.Text('f')
	}
	return "$" + q.Text('f')
}
