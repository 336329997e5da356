// Package storage abstracts the key/value substrate the application
// persists through. The real application writes to the browser's storage
// API; the harness reads either a live bridge, a captured SQLite snapshot,
// or an in-memory fake, all behind the same interface.
package storage

import (
	"context"
	"sync"
)

// KV is a minimal key/value store.
//
// Get reports ok=false when the key has never been set. Callers that need
// to distinguish "never initialized" from "empty value" rely on this, so
// implementations must not invent empty values for missing keys.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Memory is an in-process KV used for tests and simulated drivers.
// Safe for concurrent use.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

// Get returns the value for key, with ok=false if it was never set.
func (s *Memory) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Memory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Delete removes key entirely, returning it to the never-set state.
func (s *Memory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
