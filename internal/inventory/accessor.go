// Package inventory reads and writes the application's persisted product
// collection: one JSON array under a single fixed storage key.
//
// The accessor keeps no cache and never retries. The UI under test mutates
// the same collection between calls, so every read goes back to the
// substrate; a cached view could silently drift from what the application
// would actually render.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/shelfcheck/internal/model"
	"github.com/roach88/shelfcheck/internal/storage"
)

// DefaultStoreKey is the storage key the application keeps its product
// collection under.
const DefaultStoreKey = "inventory_products"

// MissingStoreError indicates the collection key has never been
// initialized. Distinct from an initialized-but-empty collection: it means
// the scenario's setup precondition was violated, and is never retried.
type MissingStoreError struct {
	Key string
}

// Error implements the error interface.
func (e *MissingStoreError) Error() string {
	return fmt.Sprintf("store key %q has never been initialized", e.Key)
}

// IsMissingStore reports whether err is a MissingStoreError.
// Uses errors.As to handle wrapped errors.
func IsMissingStore(err error) bool {
	var me *MissingStoreError
	return errors.As(err, &me)
}

// Accessor reads and writes the canonical product collection.
type Accessor struct {
	kv  storage.KV
	key string
}

// NewAccessor creates an accessor over kv. An empty key selects
// DefaultStoreKey.
func NewAccessor(kv storage.KV, key string) *Accessor {
	if key == "" {
		key = DefaultStoreKey
	}
	return &Accessor{kv: kv, key: key}
}

// Key returns the storage key this accessor reads.
func (a *Accessor) Key() string {
	return a.key
}

// ReadAll deserializes the canonical collection.
// Returns *MissingStoreError if the key has never been set.
func (a *Accessor) ReadAll(ctx context.Context) ([]model.Product, error) {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	if !ok {
		return nil, &MissingStoreError{Key: a.key}
	}

	var products []model.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, fmt.Errorf("decode collection under %q: %w", a.key, err)
	}

	// Return empty slice instead of nil
	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// FindByID returns the product with the given surrogate id, or ok=false.
func FindByID(list []model.Product, id string) (model.Product, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// ReadOne re-reads the collection and returns the product with the given
// id, or ok=false if it is absent.
func (a *Accessor) ReadOne(ctx context.Context, id string) (model.Product, bool, error) {
	list, err := a.ReadAll(ctx)
	if err != nil {
		return model.Product{}, false, err
	}
	p, ok := FindByID(list, id)
	return p, ok, nil
}

// WriteAll replaces the canonical collection. Serialization matches the
// application's writer: a plain JSON array, prices as bare numbers.
func (a *Accessor) WriteAll(ctx context.Context, list []model.Product) error {
	if list == nil {
		list = []model.Product{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := a.kv.Set(ctx, a.key, string(data)); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

// ClearAll overwrites the collection with an empty list. Teardown only;
// there is deliberately no partial delete.
func (a *Accessor) ClearAll(ctx context.Context) error {
	return a.WriteAll(ctx, []model.Product{})
}

// EnsureInitialized writes an empty collection if the key has never been
// set, and leaves any existing collection untouched. The application does
// this on first page load; the CLI needs the same explicit step when
// seeding a snapshot the app has not visited yet.
func (a *Accessor) EnsureInitialized(ctx context.Context) error {
	_, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return fmt.Errorf("read collection: %w", err)
	}
	if ok {
		return nil
	}
	return a.WriteAll(ctx, []model.Product{})
}
