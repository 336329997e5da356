// Package verify implements dual-source validation: every check captures
// an expected value from the persisted collection through the oracle,
// drives the interaction layer to a comparable observable state, and
// asserts the two agree.
//
// No check hard-codes a business value. Expectations are functions of the
// persisted state at assertion time, which keeps the suite dataset-
// agnostic and catches both rendering bugs and business-logic regressions.
// Mismatches are the primary defect signal this engine exists to produce;
// they are always surfaced, never retried or downgraded.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/roach88/shelfcheck/internal/inventory"
	"github.com/roach88/shelfcheck/internal/oracle"
	"github.com/roach88/shelfcheck/internal/ui"
)

// MismatchError reports a disagreement between the data-derived
// expectation and the UI observation.
type MismatchError struct {
	Check    string // which check failed
	Expected string // human-readable expected value
	Observed string // human-readable observed value
	Context  string // dump of the divergent structures, for debugging
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "expected/observed mismatch: %s\n", e.Check)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Observed: %s\n", e.Observed)
	if e.Context != "" {
		fmt.Fprintf(&buf, "\nContext:\n%s", e.Context)
	}
	return buf.String()
}

// IsMismatch reports whether err is a MismatchError.
// Uses errors.As to handle wrapped errors.
func IsMismatch(err error) bool {
	var me *MismatchError
	return errors.As(err, &me)
}

// dumpConfig renders mismatch context compactly and deterministically.
var dumpConfig = spew.ConfigState{Indent: "  ", SortKeys: true, DisableMethods: false}

// Checker runs dual-source checks over one accessor/driver pair.
type Checker struct {
	acc    *inventory.Accessor
	driver ui.Driver
	logger *slog.Logger
}

// NewChecker creates a checker. A nil logger discards output.
func NewChecker(acc *inventory.Accessor, driver ui.Driver, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checker{acc: acc, driver: driver, logger: logger}
}

// ProductList checks the inventory table under the given filters against
// the replicated filter pipeline: row count, then per-row identity (id,
// sku, name) and the rendered category, price, and stock cells.
func (c *Checker) ProductList(ctx context.Context, f oracle.Filters) error {
	list, err := c.acc.ReadAll(ctx)
	if err != nil {
		return err
	}
	expected := oracle.ApplyFilters(list, f)

	if err := c.driver.OpenInventory(ctx); err != nil {
		return err
	}
	if err := c.driver.SetFilters(ctx, f); err != nil {
		return err
	}
	rows, err := c.driver.VisibleProducts(ctx)
	if err != nil {
		return err
	}

	if len(rows) != len(expected) {
		return &MismatchError{
			Check:    "product list row count",
			Expected: fmt.Sprintf("%d rows", len(expected)),
			Observed: fmt.Sprintf("%d rows", len(rows)),
			Context:  dumpConfig.Sdump(f, expected, rows),
		}
	}

	for i, want := range expected {
		got := rows[i]
		if got.ID != want.ID || got.SKU != want.SKU || got.Name != want.Name {
			return &MismatchError{
				Check:    fmt.Sprintf("product list row %d identity", i),
				Expected: fmt.Sprintf("id=%s sku=%s name=%q", want.ID, want.SKU, want.Name),
				Observed: fmt.Sprintf("id=%s sku=%s name=%q", got.ID, got.SKU, got.Name),
				Context:  dumpConfig.Sdump(want, got),
			}
		}
		if got.Category != string(want.Category) {
			return &MismatchError{
				Check:    fmt.Sprintf("product list row %d category cell", i),
				Expected: string(want.Category),
				Observed: got.Category,
				Context:  dumpConfig.Sdump(want, got),
			}
		}
		if wantCell := ui.FormatPrice(want.Price); got.PriceCell != wantCell {
			return &MismatchError{
				Check:    fmt.Sprintf("product list row %d price cell", i),
				Expected: wantCell,
				Observed: got.PriceCell,
				Context:  dumpConfig.Sdump(want, got),
			}
		}
		if wantCell := ui.FormatStock(want.Stock); got.StockCell != wantCell {
			return &MismatchError{
				Check:    fmt.Sprintf("product list row %d stock cell", i),
				Expected: wantCell,
				Observed: got.StockCell,
				Context:  dumpConfig.Sdump(want, got),
			}
		}
	}

	c.logger.Debug("product list verified", "rows", len(rows))
	return nil
}

// DashboardStats checks the statistics panel against the recomputed
// snapshot, comparing in display space through the ui format adapters.
func (c *Checker) DashboardStats(ctx context.Context) error {
	list, err := c.acc.ReadAll(ctx)
	if err != nil {
		return err
	}
	expected := oracle.ComputeStats(list)

	if err := c.driver.OpenDashboard(ctx); err != nil {
		return err
	}
	observed, err := c.driver.DashboardStats(ctx)
	if err != nil {
		return err
	}

	checks := []struct {
		name     string
		expected string
		observed string
	}{
		{"dashboard total products", ui.FormatCount(expected.TotalProducts), observed.TotalProducts},
		{"dashboard low stock items", ui.FormatCount(expected.LowStockItems), observed.LowStockItems},
		{"dashboard total value", ui.FormatAmount(expected.TotalValue), observed.TotalValue},
	}
	for _, ch := range checks {
		if ch.expected != ch.observed {
			return &MismatchError{
				Check:    ch.name,
				Expected: ch.expected,
				Observed: ch.observed,
				Context:  dumpConfig.Sdump(expected, observed),
			}
		}
	}

	c.logger.Debug("dashboard stats verified", "stats", expected.String())
	return nil
}

// StockOf checks one product's displayed stock cell against its persisted
// stock.
func (c *Checker) StockOf(ctx context.Context, id string) error {
	want, ok, err := c.acc.ReadOne(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("stock check: product %q not in persisted collection", id)
	}

	if err := c.driver.OpenInventory(ctx); err != nil {
		return err
	}
	if err := c.driver.SetFilters(ctx, oracle.Filters{}); err != nil {
		return err
	}
	rows, err := c.driver.VisibleProducts(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if row.ID != id {
			continue
		}
		if wantCell := ui.FormatStock(want.Stock); row.StockCell != wantCell {
			return &MismatchError{
				Check:    "stock cell",
				Expected: wantCell,
				Observed: row.StockCell,
				Context:  dumpConfig.Sdump(want, row),
			}
		}
		return nil
	}

	return &MismatchError{
		Check:    "product row presence",
		Expected: fmt.Sprintf("row with id %s visible", id),
		Observed: "row not found in table",
		Context:  dumpConfig.Sdump(want, rows),
	}
}

// DisplayName checks the signed-in actor's displayed name against the
// explicit expectation from the actor configuration.
func (c *Checker) DisplayName(ctx context.Context, expected string) error {
	observed, err := c.driver.DisplayName(ctx)
	if err != nil {
		return err
	}
	if observed != expected {
		return &MismatchError{
			Check:    "actor display name",
			Expected: expected,
			Observed: observed,
		}
	}
	return nil
}
