package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shelfcheck/internal/model"
)

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)
	assert.Zero(t, s.TotalProducts)
	assert.Zero(t, s.LowStockItems)
	assert.Equal(t, "0", s.TotalValue.Text('f'))
}

func TestComputeStats(t *testing.T) {
	list := []model.Product{
		product("A", "A", model.CategoryHardware, "2.00", 10, 5),
		product("B", "B", model.CategorySoftware, "12.25", 3, 5),
	}

	s := ComputeStats(list)
	assert.Equal(t, 2, s.TotalProducts)
	assert.Equal(t, 1, s.LowStockItems)
	// 2.00*10 + 12.25*3 = 56.75, exact.
	assert.Equal(t, "56.75", s.TotalValue.Text('f'))
}

func TestComputeStats_ExactDecimal(t *testing.T) {
	// The classic binary-float trap: 0.10 + 0.20 must be exactly 0.30.
	list := []model.Product{
		product("A", "A", model.CategoryHardware, "0.10", 1, 0),
		product("B", "B", model.CategoryHardware, "0.20", 1, 0),
	}
	s := ComputeStats(list)
	assert.Equal(t, "0.30", s.TotalValue.Text('f'))
}

func TestComputeStats_ZeroStockContributesNothing(t *testing.T) {
	list := []model.Product{
		product("A", "A", model.CategoryHardware, "999.99", 0, 0),
	}
	s := ComputeStats(list)
	assert.Equal(t, 1, s.TotalProducts)
	assert.Equal(t, 1, s.LowStockItems, "zero stock with zero threshold is low")
	assert.Zero(t, s.TotalValue.Sign())
}

func TestComputeStats_Additive(t *testing.T) {
	// Stats over a concatenation equal the component-wise sum; the
	// full-circle check leans on this when fixtures come and go.
	a := []model.Product{product("A", "A", model.CategoryHardware, "1.25", 4, 1)}
	b := []model.Product{product("B", "B", model.CategorySoftware, "3.00", 2, 5)}

	sa := ComputeStats(a)
	sb := ComputeStats(b)
	both := ComputeStats(append(append([]model.Product{}, a...), b...))

	assert.Equal(t, sa.TotalProducts+sb.TotalProducts, both.TotalProducts)
	assert.Equal(t, sa.LowStockItems+sb.LowStockItems, both.LowStockItems)

	sum := ComputeStats(nil).TotalValue
	require.NotNil(t, sum)
	_, err := statsCtx.Add(sum, sa.TotalValue, sb.TotalValue)
	require.NoError(t, err)
	assert.Zero(t, both.TotalValue.Cmp(sum))
}

func TestStats_Equal(t *testing.T) {
	list := []model.Product{product("A", "A", model.CategoryHardware, "2.50", 2, 1)}
	s := ComputeStats(list)

	assert.True(t, s.Equal(ComputeStats(list)))

	t.Run("value compares numerically, not textually", func(t *testing.T) {
		other := ComputeStats(list)
		other.TotalValue = model.MustPrice("5.0000").Decimal()
		assert.True(t, s.Equal(other))
	})

	t.Run("any field divergence fails", func(t *testing.T) {
		other := ComputeStats(list)
		other.LowStockItems++
		assert.False(t, s.Equal(other))
	})
}

func TestStats_String(t *testing.T) {
	list := []model.Product{
		product("A", "A", model.CategoryHardware, "2.00", 10, 5),
		product("B", "B", model.CategorySoftware, "12.25", 3, 5),
	}
	assert.Equal(t, "{products=2 lowStock=1 totalValue=56.75}", ComputeStats(list).String())
	assert.Equal(t, "{products=0 lowStock=0 totalValue=0}", ComputeStats(nil).String())
}
