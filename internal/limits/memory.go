package limits

import (
	"context"
	"sync"
)

// MemoryStore is a non-durable Store, used in tests and local development.
type MemoryStore struct {
	mu     sync.Mutex
	counts Counts
}

func NewMemoryStore(initial Counts) *MemoryStore {
	return &MemoryStore{counts: initial.Clone()}
}

func (m *MemoryStore) Get(ctx context.Context) (Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts.Clone(), nil
}

func (m *MemoryStore) Increment(ctx context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[productID]++
	return nil
}

func (m *MemoryStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = Counts{}
	return nil
}
