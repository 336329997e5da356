package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/roach88/shelfcheck/internal/model"
	"github.com/roach88/shelfcheck/internal/oracle"
	"github.com/roach88/shelfcheck/internal/storage"
)

// Sim is a simulated Driver backed by the same storage substrate the
// application uses. It reimplements the application's rules on its own
// code path (float arithmetic, lowercase comparisons - what the JS app
// actually does) rather than calling the oracle package, so a bug in
// either side surfaces as a dual-source mismatch instead of cancelling
// out.
//
// Journeys and engine tests run against Sim; the real browser driver
// lives with the UI wrapper layer, outside this engine.
type Sim struct {
	mu  sync.Mutex
	kv  storage.KV
	key string

	nowFunc func() time.Time
	lastID  int64

	signedIn    bool
	displayName string
	filters     oracle.Filters

	// Two heterogeneous error-rendering shapes, as in the real app:
	// the create form shows a banner, the edit form a per-field list.
	bannerErr string
	fieldErrs []string
}

// NewSim creates a simulated driver over kv. An empty key selects the
// application's default store key.
func NewSim(kv storage.KV, key string) *Sim {
	if key == "" {
		key = "inventory_products"
	}
	return &Sim{kv: kv, key: key, nowFunc: time.Now}
}

// SetNowFunc overrides the wall clock. For deterministic tests.
func (s *Sim) SetNowFunc(f func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFunc = f
}

// Login starts a session. Like the application's first page load, it
// initializes the collection key if it has never been set.
func (s *Sim) Login(ctx context.Context, creds Credentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok, err := s.kv.Get(ctx, s.key); err != nil {
		return err
	} else if !ok {
		if err := s.kv.Set(ctx, s.key, "[]"); err != nil {
			return err
		}
	}

	s.signedIn = true
	s.displayName = creds.DisplayName
	return nil
}

// Logout ends the session. Persisted products survive; page state resets.
func (s *Sim) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signedIn = false
	s.displayName = ""
	s.filters = oracle.Filters{}
	s.bannerErr = ""
	s.fieldErrs = nil
	return nil
}

// OpenDashboard is a navigation no-op for the simulation.
func (s *Sim) OpenDashboard(ctx context.Context) error {
	return s.requireSession(ctx)
}

// OpenInventory is a navigation no-op for the simulation.
func (s *Sim) OpenInventory(ctx context.Context) error {
	return s.requireSession(ctx)
}

// CreateProduct applies the create form's validation, then appends the
// product with a fresh id and timestamps.
func (s *Sim) CreateProduct(ctx context.Context, f model.Fixture) (string, error) {
	if err := s.requireSession(ctx); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg := validateForm(f); msg != "" {
		s.bannerErr = msg
		return "", fmt.Errorf("create rejected: %s", msg)
	}

	list, err := s.read(ctx)
	if err != nil {
		return "", err
	}

	now := s.nowFunc()
	id := s.nextID(now)
	list = append(list, model.Product{
		ID:                id,
		SKU:               f.SKU,
		Name:              f.Name,
		Category:          f.Category,
		Price:             f.Price,
		Stock:             f.Stock,
		LowStockThreshold: f.LowStockThreshold,
		CreatedAt:         model.Timestamp(now),
		UpdatedAt:         model.Timestamp(now),
	})

	if err := s.write(ctx, list); err != nil {
		return "", err
	}
	s.bannerErr = ""
	return id, nil
}

// AdjustStock applies a signed delta, rejecting any delta that would
// drive stock negative. On rejection stock is unchanged and the edit
// form's field-error list is populated.
func (s *Sim) AdjustStock(ctx context.Context, id string, delta int) error {
	if err := s.requireSession(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return err
	}

	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].Stock+delta < 0 {
			s.fieldErrs = []string{"stock: cannot adjust below zero"}
			return ErrAdjustmentRejected
		}
		list[i].Stock += delta
		list[i].UpdatedAt = model.Timestamp(s.nowFunc())
		s.fieldErrs = nil
		return s.write(ctx, list)
	}
	return fmt.Errorf("product %q not found", id)
}

// DeleteProduct removes the product with the given id.
func (s *Sim) DeleteProduct(ctx context.Context, id string) error {
	if err := s.requireSession(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return s.write(ctx, list)
		}
	}
	return fmt.Errorf("product %q not found", id)
}

// SetFilters records the table controls' state.
func (s *Sim) SetFilters(ctx context.Context, f oracle.Filters) error {
	if err := s.requireSession(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	return nil
}

// VisibleProducts renders the table under the current filters.
func (s *Sim) VisibleProducts(ctx context.Context) ([]Row, error) {
	if err := s.requireSession(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	list = simFilter(list, s.filters)

	rows := make([]Row, 0, len(list))
	for _, p := range list {
		rows = append(rows, Row{
			ID:        p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Category:  string(p.Category),
			PriceCell: fmt.Sprintf("$%.2f", priceFloat(p)),
			StockCell: strconv.Itoa(p.Stock),
		})
	}
	return rows, nil
}

// DashboardStats renders the statistics panel. Totals accumulate in
// float64 and render with two decimals, as the application does.
func (s *Sim) DashboardStats(ctx context.Context) (StatsView, error) {
	if err := s.requireSession(ctx); err != nil {
		return StatsView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return StatsView{}, err
	}

	low := 0
	total := 0.0
	for _, p := range list {
		if p.Stock <= p.LowStockThreshold {
			low++
		}
		total += priceFloat(p) * float64(p.Stock)
	}
	return StatsView{
		TotalProducts: strconv.Itoa(len(list)),
		LowStockItems: strconv.Itoa(low),
		TotalValue:    fmt.Sprintf("$%.2f", total),
	}, nil
}

// DisplayName reads the signed-in actor's displayed name.
func (s *Sim) DisplayName(ctx context.Context) (string, error) {
	if err := s.requireSession(ctx); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayName, nil
}

// LastFormError reads the most recent validation message, trying the
// create-form banner shape first, then the edit-form field list.
func (s *Sim) LastFormError(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	msg, err := ExtractFirst(ctx,
		Strategy{Name: "banner", Read: func(context.Context) (string, bool, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.bannerErr, s.bannerErr != "", nil
		}},
		Strategy{Name: "field-list", Read: func(context.Context) (string, bool, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if len(s.fieldErrs) == 0 {
				return "", false, nil
			}
			return strings.Join(s.fieldErrs, "; "), true, nil
		}},
	)
	if errors.Is(err, ErrNoExtraction) {
		return "", nil
	}
	return msg, err
}

func (s *Sim) requireSession(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.signedIn {
		return fmt.Errorf("no active session")
	}
	return nil
}

// nextID mirrors the application's Date.now()-based ids, bumped past the
// last issued id so same-millisecond creations stay distinct.
func (s *Sim) nextID(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return strconv.FormatInt(ms, 10)
}

func (s *Sim) read(ctx context.Context) ([]model.Product, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("store key %q not initialized", s.key)
	}
	var list []model.Product
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	return list, nil
}

func (s *Sim) write(ctx context.Context, list []model.Product) error {
	if list == nil {
		list = []model.Product{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	return s.kv.Set(ctx, s.key, string(data))
}

// validateForm is the create form's client-side validation.
func validateForm(f model.Fixture) string {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return "name is required"
	case strings.TrimSpace(f.SKU) == "":
		return "sku is required"
	case !f.Category.Valid():
		return fmt.Sprintf("unknown category %q", f.Category)
	case f.Price.Negative():
		return "price must not be negative"
	case f.Stock < 0:
		return "stock must not be negative"
	default:
		return ""
	}
}

// simFilter is the application's own list pipeline, deliberately written
// without the oracle package: lowercase substring search, exact category,
// stable sort with lowercase name comparison and float price comparison.
func simFilter(list []model.Product, f oracle.Filters) []model.Product {
	out := make([]model.Product, 0, len(list))
	needle := strings.ToLower(f.Search)
	for _, p := range list {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.SKU), needle) {
			continue
		}
		if f.Category != "" && f.Category != "all" && string(p.Category) != f.Category {
			continue
		}
		out = append(out, p)
	}

	switch f.SortBy {
	case oracle.SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case oracle.SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return priceFloat(out[i]) < priceFloat(out[j])
		})
	case oracle.SortByStock:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Stock < out[j].Stock
		})
	}
	return out
}

func priceFloat(p model.Product) float64 {
	v, _ := strconv.ParseFloat(p.Price.String(), 64)
	return v
}
