package oracle

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/shelfcheck/internal/model"
)

// Stats is the dashboard statistics snapshot. Derived on demand, never
// persisted:
//
//	totalProducts = len(list)
//	lowStockItems = count(stock <= lowStockThreshold)
//	totalValue    = sum(price * stock)
type Stats struct {
	TotalProducts int
	LowStockItems int
	TotalValue    *apd.Decimal
}

// statsCtx carries enough precision that price*stock sums never round.
// The dashboard compares to the cent, so any rounding here would fabricate
// mismatches.
var statsCtx = apd.BaseContext.WithPrecision(34)

// ComputeStats recomputes the dashboard snapshot from the raw collection.
// Summation is exact decimal arithmetic, matching the value the UI
// displays, since comparisons use exact equality.
func ComputeStats(list []model.Product) Stats {
	total := apd.New(0, 0)
	low := 0
	for _, p := range list {
		if p.LowStock() {
			low++
		}
		line := new(apd.Decimal)
		stock := apd.New(int64(p.Stock), 0)
		// Exact for any realistic price/stock; condition flags ignored
		// because precision 34 cannot overflow on catalog-sized data.
		statsCtx.Mul(line, p.Price.Decimal(), stock)
		statsCtx.Add(total, total, line)
	}
	return Stats{
		TotalProducts: len(list),
		LowStockItems: low,
		TotalValue:    total,
	}
}

// Equal reports whether two snapshots agree. Decimal totals compare by
// numeric value, so 10 and 10.00 are equal.
func (s Stats) Equal(other Stats) bool {
	return s.TotalProducts == other.TotalProducts &&
		s.LowStockItems == other.LowStockItems &&
		s.TotalValue.Cmp(other.TotalValue) == 0
}

// String renders the snapshot for diagnostics.
func (s Stats) String() string {
	return fmt.Sprintf("{products=%d lowStock=%d totalValue=%s}",
		s.TotalProducts, s.LowStockItems, s.TotalValue.Text('f'))
}
