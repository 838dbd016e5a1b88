package memory

import (
	"context"
	"sync"
)

// SettingsStore keeps named values in process memory. Used when Postgres is
// not configured and throughout the test suite.
type SettingsStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewSettingsStore() *SettingsStore {
	return &SettingsStore{values: make(map[string][]byte)}
}

func (s *SettingsStore) Get(_ context.Context, name string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.values[name]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, true, nil
}

func (s *SettingsStore) Set(_ context.Context, name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[name] = cp
	return nil
}
