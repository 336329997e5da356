package ui

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoExtraction is returned when no strategy produced a value.
var ErrNoExtraction = errors.New("no extraction strategy matched")

// Strategy reads one possible rendering shape of a value. ok=false means
// "this shape is not present" and is not an error; the next strategy is
// tried. A non-nil error aborts the chain immediately.
type Strategy struct {
	Name string
	Read func(ctx context.Context) (value string, ok bool, err error)
}

// ExtractFirst tries strategies in order and returns the first value found.
//
// The application renders form errors in two incompatible DOM shapes (a
// banner on the create form, a per-field list on the edit form); drivers
// cover both by registering one strategy per shape. The pattern is kept
// general: a short ordered list, first success wins.
func ExtractFirst(ctx context.Context, strategies ...Strategy) (string, error) {
	for _, s := range strategies {
		value, ok, err := s.Read(ctx)
		if err != nil {
			return "", fmt.Errorf("extraction strategy %q: %w", s.Name, err)
		}
		if ok {
			return value, nil
		}
	}
	return "", ErrNoExtraction
}
