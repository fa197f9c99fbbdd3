package scans

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory scan store for demo/development mode.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*Record // newest first
}

// NewMemoryStore creates a new in-memory scan store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Record, len(m.records))
	for i, r := range m.records {
		cp := *r
		out[i] = &cp
	}
	return out, nil
}

func (m *MemoryStore) Insert(ctx context.Context, r *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *r
	m.records = append([]*Record{&cp}, m.records...)
	return nil
}

func (m *MemoryStore) Prune(ctx context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if keep >= 0 && len(m.records) > keep {
		m.records = m.records[:keep]
	}
	return nil
}
