package session

import (
	"context"
	"sync"
)

// MemoryGateway is an in-process Gateway.
type MemoryGateway struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryGateway returns an empty MemoryGateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{values: map[string][]byte{}}
}

// Load implements Gateway.
func (m *MemoryGateway) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Save implements Gateway.
func (m *MemoryGateway) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Remove implements Gateway.
func (m *MemoryGateway) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
