package journey

import (
	"context"
	"fmt"

	"github.com/roach88/shelfcheck/internal/model"
	"github.com/roach88/shelfcheck/internal/oracle"
)

// Canned journeys. Each uses its own SKU prefix (JRN-LC, JRN-LS, JRN-MA)
// so an aborted run's leftovers cannot satisfy another journey's
// expectations.

// All returns every canned journey, in a stable order.
func All() []*Journey {
	return []*Journey{
		Lifecycle(),
		LowStockBoundary(),
		MultiActorHandoff(),
	}
}

// ByName returns the canned journey with the given name.
func ByName(name string) (*Journey, error) {
	for _, j := range All() {
		if j.Name == name {
			return j, nil
		}
	}
	return nil, fmt.Errorf("unknown journey %q", name)
}

// Lifecycle walks a product through its complete life: created through
// the UI form, adjusted legally, adjustment rejected at the boundary,
// then deleted. The automatic full-circle check proves the journey left
// no residue.
func Lifecycle() *Journey {
	fixture := model.Fixture{
		SKU:               "JRN-LC-001",
		Name:              "Lifecycle Probe Keyboard",
		Category:          model.CategoryAccessories,
		Price:             model.MustPrice("24.50"),
		Stock:             10,
		LowStockThreshold: 5,
	}

	return &Journey{
		Name:        "product_lifecycle",
		Description: "Create, adjust, reject illegal adjustment, delete; system returns to baseline.",
		Actor:       RoleStandard,
		Steps: []Step{
			{
				Name: "create product",
				Act: func(ctx context.Context, rt *Runtime) error {
					id, err := rt.Driver.CreateProduct(ctx, fixture)
					if err != nil {
						return err
					}
					rt.Vars["id"] = id
					return nil
				},
				Verify: func(ctx context.Context, rt *Runtime) error {
					if err := rt.Check.DashboardStats(ctx); err != nil {
						return err
					}
					return rt.Check.ProductList(ctx, oracle.Filters{})
				},
			},
			{
				Name: "legal stock adjustment",
				Act: func(ctx context.Context, rt *Runtime) error {
					return rt.AdjustStock(ctx, rt.Vars["id"], -6, false)
				},
				Verify: func(ctx context.Context, rt *Runtime) error {
					if err := rt.Check.StockOf(ctx, rt.Vars["id"]); err != nil {
						return err
					}
					return rt.Check.DashboardStats(ctx)
				},
			},
			{
				Name: "boundary adjustment rejected",
				Act: func(ctx context.Context, rt *Runtime) error {
					return rt.AdjustStock(ctx, rt.Vars["id"], -10, true)
				},
				Verify: func(ctx context.Context, rt *Runtime) error {
					// Rejection must leave stock untouched.
					return rt.Check.StockOf(ctx, rt.Vars["id"])
				},
			},
			{
				Name: "delete product",
				Act: func(ctx context.Context, rt *Runtime) error {
					return rt.Driver.DeleteProduct(ctx, rt.Vars["id"])
				},
				Verify: func(ctx context.Context, rt *Runtime) error {
					if err := rt.Check.DashboardStats(ctx); err != nil {
						return err
					}
					return rt.Check.ProductList(ctx, oracle.Filters{})
				},
			},
		},
	}
}

// LowStockBoundary seeds a baseline dataset and walks one product across
// its low-stock threshold and back, verifying the dashboard classification
// flips at exactly stock == threshold.
func LowStockBoundary() *Journey {
	return &Journey{
		Name:        "low_stock_boundary",
		Description: "Walk a product across its low-stock threshold and back.",
		Actor:       RoleStandard,
		Fixtures: []model.Fixture{
			{
				SKU:               "JRN-LS-001",
				Name:              "Boundary Probe Monitor",
				Category:          model.CategoryElectronics,
				Price:             model.MustPrice("2.00"),
				Stock:             10,
				LowStockThreshold: 5,
			},
			{
				SKU:               "JRN-LS-002",
				Name:              "Boundary Probe Cable",
				Category:          model.CategoryAccessories,
				Price:             model.MustPrice("12.25"),
				Stock:             3,
				LowStockThreshold: 5,
			},
		},
		Steps: []Step{
			{
				Name: "seeded dashboard",
				Verify: func(ctx context.Context, rt *Runtime) error {
					return rt.Check.DashboardStats(ctx)
				},
			},
			{
				Name: "drop below threshold",
				Act: func(ctx context.Context, rt *Runtime) error {
					id, err := seededID(ctx, rt, "JRN-LS-001")
					if err != nil {
						return err
					}
					rt.Vars["id"] = id
					return rt.AdjustStock(ctx, id, -6, false)
				},
				Verify: func(ctx context.Context, rt *Runtime) error {
					if err := rt.Check.StockOf(ctx, rt.Vars["id"]); err != nil {
						return err
					}
					return rt.Check.DashboardStats(ctx)
				},
			},
			{
				Name: "restore above threshold",
				Act: func(ctx context.Context, rt *Runtime) error {
					return rt.AdjustStock(ctx, rt.Vars["id"], 6, false)
				},
				Verify: func(ctx context.Context, rt *Runtime) error {
					if err := rt.Check.StockOf(ctx, rt.Vars["id"]); err != nil {
						return err
					}
					return rt.Check.DashboardStats(ctx)
				},
			},
		},
	}
}

// MultiActorHandoff creates a product as the standard actor, switches the
// session to the elevated actor, and proves the entity's surrogate id is
// still discoverable - persistence is actor-independent - before the new
// actor disposes of it.
func MultiActorHandoff() *Journey {
	fixture := model.Fixture{
		SKU:               "JRN-MA-001",
		Name:              "Handoff Probe License",
		Category:          model.CategorySoftware,
		Price:             model.MustPrice("99.00"),
		Stock:             7,
		LowStockThreshold: 2,
	}

	return &Journey{
		Name:        "multi_actor_handoff",
		Description: "Entity created by one actor remains discoverable by another after a session switch.",
		Actor:       RoleStandard,
		Steps: []Step{
			{
				Name: "create as standard actor",
				Act: func(ctx context.Context, rt *Runtime) error {
					id, err := rt.Driver.CreateProduct(ctx, fixture)
					if err != nil {
						return err
					}
					rt.Vars["id"] = id
					return nil
				},
				Verify: func(ctx context.Context, rt *Runtime) error {
					return rt.Check.ProductList(ctx, oracle.Filters{})
				},
			},
			{
				Name: "switch to elevated actor",
				Act: func(ctx context.Context, rt *Runtime) error {
					return rt.SwitchActor(ctx, RoleElevated)
				},
				Verify: func(ctx context.Context, rt *Runtime) error {
					creds, err := rt.CredentialsFor(RoleElevated)
					if err != nil {
						return err
					}
					return rt.Check.DisplayName(ctx, creds.DisplayName)
				},
			},
			{
				Name: "product visible to new actor",
				Verify: func(ctx context.Context, rt *Runtime) error {
					if err := rt.Check.StockOf(ctx, rt.Vars["id"]); err != nil {
						return err
					}
					return rt.Check.DashboardStats(ctx)
				},
			},
			{
				Name: "delete as elevated actor",
				Act: func(ctx context.Context, rt *Runtime) error {
					return rt.Driver.DeleteProduct(ctx, rt.Vars["id"])
				},
				Verify: func(ctx context.Context, rt *Runtime) error {
					return rt.Check.DashboardStats(ctx)
				},
			},
		},
	}
}

// seededID resolves a seeded fixture's surrogate id by SKU. Seeded ids
// are assigned at runtime, so journeys look them up instead of capturing
// them from EnsureExist (which only reports newly inserted rows).
func seededID(ctx context.Context, rt *Runtime, sku string) (string, error) {
	list, err := rt.Accessor.ReadAll(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range list {
		if p.SKU == sku {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("seeded fixture %q not found", sku)
}
