// Package seed bulk-inserts synthetic products directly into the
// application's persistence layer. Seeding through the real UI form is two
// orders of magnitude slower; writing the collection directly lets many
// scenarios share an additively-merged baseline dataset.
//
// Deduplication is by SKU (the natural key): a fixture whose SKU already
// exists is silently skipped. That is intentional idempotence, not an
// error, so repeated seeding of the same catalog is a no-op.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/roach88/shelfcheck/internal/inventory"
	"github.com/roach88/shelfcheck/internal/model"
)

// Clock supplies wall-clock time for surrogate ids and timestamps.
// Injected so tests can run with a stepped deterministic clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// idGenerator derives surrogate ids from a monotonic millisecond counter.
// The counter advances at least once per insertion, so a batch inserted
// within one millisecond still gets distinct ids.
type idGenerator struct {
	last int64
}

func (g *idGenerator) next(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// Seeder inserts fixtures through the persistence accessor.
//
// EnsureExist is one read-modify-write of the canonical collection. A
// concurrent external write between the read and the write would be lost;
// the suite runs one actor per browser context, so nothing else touches
// the collection while a seeder call is in flight.
type Seeder struct {
	acc    *inventory.Accessor
	clock  Clock
	ids    idGenerator
	logger *slog.Logger
}

// NewSeeder creates a seeder over the accessor. A nil clock selects the
// system clock; a nil logger discards output.
func NewSeeder(acc *inventory.Accessor, clock Clock, logger *slog.Logger) *Seeder {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Seeder{acc: acc, clock: clock, logger: logger}
}

// EnsureExist inserts each fixture whose SKU is not already present,
// assigning fresh surrogate ids and timestamps, and leaves pre-existing
// products untouched. Returns the ids of the products actually inserted;
// skipped duplicates contribute nothing to the result.
func (s *Seeder) EnsureExist(ctx context.Context, fixtures []model.Fixture) ([]string, error) {
	list, err := s.acc.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	// SKU is not unique in the application (known defect), so this set
	// answers "does at least one product carry this SKU".
	seen := make(map[string]bool, len(list))
	for _, p := range list {
		seen[p.SKU] = true
	}

	inserted := []string{}
	for _, f := range fixtures {
		if seen[f.SKU] {
			s.logger.Debug("fixture skipped, SKU already present", "sku", f.SKU)
			continue
		}

		now := s.clock.Now()
		p := model.Product{
			ID:                s.ids.next(now),
			SKU:               f.SKU,
			Name:              f.Name,
			Category:          f.Category,
			Price:             f.Price,
			Stock:             f.Stock,
			LowStockThreshold: f.LowStockThreshold,
			CreatedAt:         model.Timestamp(now),
			UpdatedAt:         model.Timestamp(now),
		}
		list = append(list, p)
		seen[f.SKU] = true
		inserted = append(inserted, p.ID)

		s.logger.Debug("fixture inserted", "sku", f.SKU, "id", p.ID)
	}

	if len(inserted) == 0 {
		return inserted, nil
	}

	if err := s.acc.WriteAll(ctx, list); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	s.logger.Info("seeding complete",
		"inserted", len(inserted),
		"skipped", len(fixtures)-len(inserted),
	)
	return inserted, nil
}

// ClearAll delegates to the accessor's teardown overwrite.
func (s *Seeder) ClearAll(ctx context.Context) error {
	return s.acc.ClearAll(ctx)
}
