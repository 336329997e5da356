package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shelfcheck/internal/model"
	"github.com/roach88/shelfcheck/internal/storage"
)

func newTestAccessor(t *testing.T) *Accessor {
	t.Helper()
	return NewAccessor(storage.NewMemory(), "")
}

func sampleProducts() []model.Product {
	return []model.Product{
		{
			ID:                "1700000000001",
			SKU:               "SKU-A",
			Name:              "Alpha",
			Category:          model.CategoryElectronics,
			Price:             model.MustPrice("2.00"),
			Stock:             10,
			LowStockThreshold: 5,
			CreatedAt:         "2026-01-01T00:00:00.000Z",
			UpdatedAt:         "2026-01-01T00:00:00.000Z",
		},
		{
			ID:                "1700000000002",
			SKU:               "SKU-B",
			Name:              "Beta",
			Category:          model.CategorySoftware,
			Price:             model.MustPrice("15.50"),
			Stock:             2,
			LowStockThreshold: 5,
			CreatedAt:         "2026-01-01T00:00:00.000Z",
			UpdatedAt:         "2026-01-01T00:00:00.000Z",
		},
	}
}

func TestReadAll_MissingStore(t *testing.T) {
	acc := newTestAccessor(t)

	_, err := acc.ReadAll(context.Background())
	require.Error(t, err)
	assert.True(t, IsMissingStore(err))
	assert.Contains(t, err.Error(), "never been initialized")
}

func TestReadAll_EmptyIsNotMissing(t *testing.T) {
	ctx := context.Background()
	acc := newTestAccessor(t)
	require.NoError(t, acc.WriteAll(ctx, nil))

	list, err := acc.ReadAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestWriteAll_ReadAll_RoundTrip(t *testing.T) {
	ctx := context.Background()
	acc := newTestAccessor(t)
	require.NoError(t, acc.WriteAll(ctx, sampleProducts()))

	list, err := acc.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "SKU-A", list[0].SKU)
	assert.Equal(t, "2.00", list[0].Price.String())
	assert.Equal(t, 10, list[0].Stock)
}

func TestReadAll_CorruptCollection(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, DefaultStoreKey, "{not json"))

	acc := NewAccessor(kv, "")
	_, err := acc.ReadAll(ctx)
	require.Error(t, err)
	assert.False(t, IsMissingStore(err), "corruption is not a missing store")
}

func TestFindByID(t *testing.T) {
	list := sampleProducts()

	p, ok := FindByID(list, "1700000000002")
	assert.True(t, ok)
	assert.Equal(t, "SKU-B", p.SKU)

	_, ok = FindByID(list, "nope")
	assert.False(t, ok)
}

func TestReadOne(t *testing.T) {
	ctx := context.Background()
	acc := newTestAccessor(t)
	require.NoError(t, acc.WriteAll(ctx, sampleProducts()))

	p, ok, err := acc.ReadOne(ctx, "1700000000001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Alpha", p.Name)

	_, ok, err = acc.ReadOne(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadOne_PropagatesMissingStore(t *testing.T) {
	acc := newTestAccessor(t)
	_, _, err := acc.ReadOne(context.Background(), "any")
	assert.True(t, IsMissingStore(err))
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	acc := newTestAccessor(t)
	require.NoError(t, acc.WriteAll(ctx, sampleProducts()))
	require.NoError(t, acc.ClearAll(ctx))

	list, err := acc.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "clear overwrites with an empty list, not a missing key")
}

func TestEnsureInitialized(t *testing.T) {
	ctx := context.Background()
	acc := newTestAccessor(t)

	require.NoError(t, acc.EnsureInitialized(ctx))
	list, err := acc.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// A second call must not wipe existing data.
	require.NoError(t, acc.WriteAll(ctx, sampleProducts()))
	require.NoError(t, acc.EnsureInitialized(ctx))
	list, err = acc.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAccessor_NoCaching(t *testing.T) {
	// External writers mutate the collection between calls; every read
	// must observe the substrate freshly.
	ctx := context.Background()
	kv := storage.NewMemory()
	acc := NewAccessor(kv, "")
	require.NoError(t, acc.WriteAll(ctx, sampleProducts()))

	_, err := acc.ReadAll(ctx)
	require.NoError(t, err)

	// Simulate the UI under test rewriting the collection directly.
	require.NoError(t, kv.Set(ctx, DefaultStoreKey, `[]`))

	list, err := acc.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
