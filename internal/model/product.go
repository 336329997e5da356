// Package model defines the inventory entities the suite observes and the
// exact JSON shapes the application persists.
//
// The persisted collection is one JSON array under a single fixed storage
// key. There is no versioning field and no migration support; a schema
// change in the application invalidates fixtures silently, so these types
// are the single place the wire shape is declared.
package model

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"
	"gopkg.in/yaml.v3"
)

// Category is the fixed product category enumeration.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryAccessories Category = "Accessories"
	CategorySoftware    Category = "Software"
	CategoryHardware    Category = "Hardware"
)

// Categories lists all valid categories in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryAccessories,
	CategorySoftware,
	CategoryHardware,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Price is an exact decimal amount. It round-trips through JSON as a plain
// number without float accumulation, so oracle sums match the application's
// displayed totals to the cent.
type Price struct {
	dec apd.Decimal
}

// NewPrice parses a decimal string like "19.99".
func NewPrice(s string) (Price, error) {
	var p Price
	if _, _, err := p.dec.SetString(s); err != nil {
		return Price{}, fmt.Errorf("parse price %q: %w", s, err)
	}
	return p, nil
}

// MustPrice is NewPrice that panics on malformed input. For fixtures and tests.
func MustPrice(s string) Price {
	p, err := NewPrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Decimal returns a copy of the underlying decimal value.
func (p Price) Decimal() *apd.Decimal {
	var d apd.Decimal
	d.Set(&p.dec)
	return &d
}

// Cmp compares two prices: -1, 0, or +1.
func (p Price) Cmp(other Price) int {
	return p.dec.Cmp(&other.dec)
}

// Negative reports whether the price is below zero.
func (p Price) Negative() bool {
	return p.dec.Negative && !p.dec.IsZero()
}

// String renders the decimal in plain (non-exponential) notation.
func (p Price) String() string {
	return p.dec.Text('f')
}

// MarshalJSON emits the price as a bare JSON number, matching what the
// application writes.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.dec.Text('f')), nil
}

// UnmarshalJSON accepts a JSON number (or a quoted decimal, which some
// older fixture dumps contain) and parses it exactly.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if _, _, err := p.dec.SetString(s); err != nil {
		return fmt.Errorf("parse price %q: %w", s, err)
	}
	return nil
}

// UnmarshalYAML parses prices from fixture catalogs, where they appear as
// scalars like 2.00 or "2.00". Reading the node text directly preserves the
// exact literal the catalog author wrote.
func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("parse price: expected scalar, got %v", node.Kind)
	}
	if _, _, err := p.dec.SetString(node.Value); err != nil {
		return fmt.Errorf("parse price %q: %w", node.Value, err)
	}
	return nil
}

// Product is the persisted business entity under test.
//
// SKU is the natural key the seeder deduplicates on. The application does
// NOT enforce SKU uniqueness (a known defect), so nothing here may assume
// at most one product per SKU.
type Product struct {
	ID                string   `json:"id"`
	SKU               string   `json:"sku"`
	Name              string   `json:"name"`
	Category          Category `json:"category"`
	Price             Price    `json:"price"`
	Stock             int      `json:"stock"`
	LowStockThreshold int      `json:"lowStockThreshold"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// LowStock reports whether the product is at or below its threshold.
func (p Product) LowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// Fixture is a product definition without surrogate id and timestamps;
// the seeder derives the missing fields at insertion time.
type Fixture struct {
	SKU               string   `json:"sku" yaml:"sku"`
	Name              string   `json:"name" yaml:"name"`
	Category          Category `json:"category" yaml:"category"`
	Price             Price    `json:"price" yaml:"price"`
	Stock             int      `json:"stock" yaml:"stock"`
	LowStockThreshold int      `json:"lowStockThreshold" yaml:"lowStockThreshold"`
}

// Timestamp renders t the way the application's writer does: UTC ISO-8601
// with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
