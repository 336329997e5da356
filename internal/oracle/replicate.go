// Package oracle independently recomputes the application's business-logic
// outputs from the raw persisted collection. These functions are the ground
// truth every UI observation is checked against: a divergence from the
// application's real rules is a latent suite bug, not a product bug, so
// each rule below names the application behavior it mirrors.
//
// All functions are pure. Inputs are never mutated; results are fresh
// slices.
package oracle

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/roach88/shelfcheck/internal/model"
)

// CategoryAll is the category filter sentinel meaning "no filtering".
// Mirrors the application's category dropdown default value.
const CategoryAll = "all"

// SortField selects the inventory table sort column.
type SortField string

const (
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
	SortByStock SortField = "stock"
)

// Filters mirrors the application's list controls. Zero values mean the
// corresponding stage is a no-op.
type Filters struct {
	Search   string
	Category string
	SortBy   SortField
}

// nameCollator mirrors the application's locale-aware name comparison
// (String.prototype.localeCompare on an English UI). Case-insensitive so
// "apple" and "Apple" sort together, as the browser collator does.
var nameCollator = collate.New(language.English, collate.IgnoreCase)

// FilterBySearch returns products whose name OR sku contains term,
// case-insensitively. An empty term is the identity.
func FilterBySearch(list []model.Product, term string) []model.Product {
	if term == "" {
		return copyList(list)
	}
	needle := strings.ToLower(term)
	out := make([]model.Product, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByCategory returns products whose category matches exactly.
// The sentinel "all" (and an empty string) is the identity.
func FilterByCategory(list []model.Product, category string) []model.Product {
	if category == "" || category == CategoryAll {
		return copyList(list)
	}
	out := make([]model.Product, 0, len(list))
	for _, p := range list {
		if string(p.Category) == category {
			out = append(out, p)
		}
	}
	return out
}

// SortBy returns a new list stably sorted by the given field:
// name (locale-aware), price ascending, or stock ascending.
// An unknown or empty field is the identity. Ties keep persisted order,
// matching the application's stable array sort.
func SortBy(list []model.Product, field SortField) []model.Product {
	out := copyList(list)
	switch field {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return nameCollator.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.Cmp(out[j].Price) < 0
		})
	case SortByStock:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Stock < out[j].Stock
		})
	}
	return out
}

// ApplyFilters composes search -> category -> sort, in that fixed order.
// Each stage is a no-op when its option is absent. The order is fixed for
// determinism; search and category commute on result-set membership.
func ApplyFilters(list []model.Product, f Filters) []model.Product {
	out := FilterBySearch(list, f.Search)
	out = FilterByCategory(out, f.Category)
	out = SortBy(out, f.SortBy)
	return out
}

// LowStock returns the products at or below their low-stock threshold.
func LowStock(list []model.Product) []model.Product {
	out := make([]model.Product, 0, len(list))
	for _, p := range list {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out
}

// IsAdjustmentLegal reports whether applying the signed delta to the
// current stock keeps it non-negative. Mirrors the application's
// stock-adjustment guard: reject if stock + delta < 0.
func IsAdjustmentLegal(currentStock, delta int) bool {
	return currentStock+delta >= 0
}

// copyList returns a shallow copy so callers can reorder freely without
// mutating the caller's slice.
func copyList(list []model.Product) []model.Product {
	out := make([]model.Product, len(list))
	copy(out, list)
	return out
}
