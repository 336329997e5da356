// Package journey sequences multi-step, sometimes multi-actor, business
// scenarios over the oracle engine: seed fixtures, capture a baseline
// snapshot, drive the interaction layer step by step with dual-source
// verification, and assert the system returns to the baseline after a
// complete round trip (the full-circle invariant).
package journey

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/shelfcheck/internal/inventory"
	"github.com/roach88/shelfcheck/internal/model"
	"github.com/roach88/shelfcheck/internal/oracle"
	"github.com/roach88/shelfcheck/internal/ui"
	"github.com/roach88/shelfcheck/internal/verify"
)

// Role selects the actor a journey runs as. Roles are explicit journey
// parameters; nothing infers credentials from journey names.
type Role string

const (
	// RoleElevated is the administrative actor.
	RoleElevated Role = "elevated"

	// RoleStandard is the ordinary actor.
	RoleStandard Role = "standard"
)

// IllegalAdjustmentError reports a test-authoring bug: a step submitted a
// stock delta the replicator's legality rule rejects without declaring
// that it expects a rejection. Hard failure, never a soft skip.
type IllegalAdjustmentError struct {
	ID    string
	Stock int
	Delta int
}

// Error implements the error interface.
func (e *IllegalAdjustmentError) Error() string {
	return fmt.Sprintf("illegal adjustment attempted on %s: stock %d + delta %d < 0 (step must declare ExpectRejected)",
		e.ID, e.Stock, e.Delta)
}

// IsIllegalAdjustment reports whether err is an IllegalAdjustmentError.
// Uses errors.As to handle wrapped errors.
func IsIllegalAdjustment(err error) bool {
	var ie *IllegalAdjustmentError
	return errors.As(err, &ie)
}

// Step is one named state of a journey. Steps execute strictly in
// sequence with no branching and no retries; the first failure aborts the
// journey.
type Step struct {
	// Name identifies the step in traces and failure messages.
	Name string

	// Act performs one business operation through the interaction layer.
	// Optional: a step may be verification-only.
	Act func(ctx context.Context, rt *Runtime) error

	// Verify runs the dual-source check appropriate to this step.
	// Optional: an actor switch, for example, has nothing to verify yet.
	Verify func(ctx context.Context, rt *Runtime) error
}

// Journey is a complete scenario definition.
type Journey struct {
	// Name uniquely identifies the journey (and its golden trace file).
	Name string

	// Description explains what the journey validates.
	Description string

	// Actor is the role the journey starts as.
	Actor Role

	// Fixtures are seeded before the baseline capture. Journeys use
	// uniquely-prefixed SKUs so leftovers from an aborted run cannot
	// satisfy another journey's expectations.
	Fixtures []model.Fixture

	// Steps run strictly in sequence after the baseline capture.
	Steps []Step
}

// Runtime is what steps see while a journey executes.
type Runtime struct {
	Driver   ui.Driver
	Accessor *inventory.Accessor
	Check    *verify.Checker

	// Vars carries values captured by earlier steps (surrogate ids,
	// mostly) to later ones.
	Vars map[string]string

	actors map[Role]ui.Credentials
}

// CredentialsFor returns the configured credentials for a role.
func (rt *Runtime) CredentialsFor(role Role) (ui.Credentials, error) {
	creds, ok := rt.actors[role]
	if !ok {
		return ui.Credentials{}, fmt.Errorf("no credentials configured for role %q", role)
	}
	return creds, nil
}

// SwitchActor ends the current session and starts one as the given role.
// It is an ordinary Act: persisted products must remain discoverable by
// the new actor.
func (rt *Runtime) SwitchActor(ctx context.Context, role Role) error {
	creds, err := rt.CredentialsFor(role)
	if err != nil {
		return err
	}
	if err := rt.Driver.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := rt.Driver.Login(ctx, creds); err != nil {
		return fmt.Errorf("login as %s: %w", role, err)
	}
	return nil
}

// AdjustStock applies a delta through the UI after pre-checking legality
// against the replicator, the way a correctly-written step must.
//
// A delta the replicator calls illegal is only allowed when
// expectRejected is set, in which case the application must refuse it and
// leave the stock unchanged. Submitting an illegal delta without
// expectRejected - or expecting a rejection of a legal delta - is a
// test-authoring bug and fails hard.
func (rt *Runtime) AdjustStock(ctx context.Context, id string, delta int, expectRejected bool) error {
	p, ok, err := rt.Accessor.ReadOne(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("adjust stock: product %q not in persisted collection", id)
	}

	legal := oracle.IsAdjustmentLegal(p.Stock, delta)
	if !legal && !expectRejected {
		return &IllegalAdjustmentError{ID: id, Stock: p.Stock, Delta: delta}
	}
	if legal && expectRejected {
		return fmt.Errorf("adjust stock: step expects rejection but stock %d + delta %d is legal", p.Stock, delta)
	}

	err = rt.Driver.AdjustStock(ctx, id, delta)
	if expectRejected {
		if !errors.Is(err, ui.ErrAdjustmentRejected) {
			return fmt.Errorf("adjust stock: application accepted an illegal delta %d on %s (stock %d)", delta, id, p.Stock)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}
