// Package ui defines the contract between the oracle engine and the
// external browser interaction layer, plus the display-formatting
// assumptions baked into comparisons.
//
// The engine never touches DOM mechanics; it drives a Driver and reads the
// observation accessors. The production Driver wraps the real browser
// harness (out of scope here); Sim is the in-repo stand-in.
package ui

import (
	"context"
	"errors"

	"github.com/roach88/shelfcheck/internal/model"
	"github.com/roach88/shelfcheck/internal/oracle"
)

// ErrAdjustmentRejected is returned by AdjustStock when the application
// refuses the delta (it would drive stock negative). The stock must be
// unchanged after a rejection.
var ErrAdjustmentRejected = errors.New("stock adjustment rejected by application")

// Credentials identifies an actor to the login form.
type Credentials struct {
	Username    string
	Password    string
	DisplayName string
}

// Row is a product row as observed in the inventory table. Price and stock
// are the rendered cell strings, not parsed values: comparisons happen in
// display space so rendering bugs are caught too.
type Row struct {
	ID        string
	SKU       string
	Name      string
	Category  string
	PriceCell string
	StockCell string
}

// StatsView is the dashboard statistics panel as displayed.
type StatsView struct {
	TotalProducts string
	LowStockItems string
	TotalValue    string
}

// Driver is the external interaction layer. Every method may suspend until
// the browser reports completion, so all of them take a context; timeouts
// propagate as scenario failure with no retry at this layer.
type Driver interface {
	// Login starts a session for the given actor.
	Login(ctx context.Context, creds Credentials) error

	// Logout ends the current session. Persisted products must survive.
	Logout(ctx context.Context) error

	// OpenDashboard navigates to the statistics panel.
	OpenDashboard(ctx context.Context) error

	// OpenInventory navigates to the product table.
	OpenInventory(ctx context.Context) error

	// CreateProduct submits the create form and returns the new surrogate id.
	CreateProduct(ctx context.Context, f model.Fixture) (string, error)

	// AdjustStock applies a signed delta to one product's stock.
	// Returns ErrAdjustmentRejected when the application refuses.
	AdjustStock(ctx context.Context, id string, delta int) error

	// DeleteProduct removes a product through the UI delete flow.
	DeleteProduct(ctx context.Context, id string) error

	// SetFilters applies search/category/sort controls to the table.
	SetFilters(ctx context.Context, f oracle.Filters) error

	// VisibleProducts reads the table rows currently displayed.
	VisibleProducts(ctx context.Context) ([]Row, error)

	// DashboardStats reads the statistics panel as displayed.
	DashboardStats(ctx context.Context) (StatsView, error)

	// DisplayName reads the signed-in actor's displayed name.
	DisplayName(ctx context.Context) (string, error)

	// LastFormError reads the most recent form validation message, or ""
	// when none is shown.
	LastFormError(ctx context.Context) (string, error)
}
