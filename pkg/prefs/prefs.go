// Package prefs persists user preferences between CLI runs.
//
// Preferences are string key/value pairs. Reading from a store that has
// never been written yields the defaults, currently sidebar = "0".
package prefs

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/matzehuels/mailgrid/pkg/errors"
)

// Sidebar toggles the detail pane of the links editor. "1" shows it.
const Sidebar = "sidebar"

// Defaults returns a fresh copy of the default preferences.
func Defaults() map[string]string {
	return map[string]string{Sidebar: "0"}
}

// Store is a preference backend.
type Store interface {
	// Get returns the value of key, or "" when unset.
	Get(ctx context.Context, key string) (string, error)

	// Set validates and stores value under key.
	Set(ctx context.Context, key, value string) error

	// All returns every stored preference merged over the defaults.
	All(ctx context.Context) (map[string]string, error)
}

// Validate reports whether value is acceptable for key. Unknown keys accept
// any value.
func Validate(key, value string) error {
	if key == "" {
		return errors.New(errors.ErrCodeInvalidOption, "preference key is empty")
	}
	switch key {
	case Sidebar:
		if value != "0" && value != "1" {
			return errors.New(errors.ErrCodeInvalidOption, "%s must be 0 or 1, got %q", key, value)
		}
	}
	return nil
}

// Enabled reports whether a boolean preference is "1".
func Enabled(ctx context.Context, s Store, key string) bool {
	v, err := s.Get(ctx, key)
	return err == nil && v == "1"
}

// Keys returns the keys of m in sorted order.
func Keys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MemoryStore keeps preferences in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a store seeded with the defaults.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: Defaults()}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) All(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values), nil
}

var _ Store = (*MemoryStore)(nil)
