package store

import (
	"context"
	"sync"
)

// KV is a string key-value backend.
type KV interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Revision returns how many times key has been written (0 if never).
	Revision(ctx context.Context, key string) (int64, error)
}

// Memory is an in-process KV.
//
// Thread-safety: Memory is safe for concurrent use via internal mutex.
type Memory struct {
	mu        sync.Mutex
	values    map[string]string
	revisions map[string]int64
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		values:    make(map[string]string),
		revisions: make(map[string]int64),
	}
}

// Get implements KV.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Put implements KV.
func (m *Memory) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.revisions[key]++
	return nil
}

// Revision implements KV.
func (m *Memory) Revision(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revisions[key], nil
}
