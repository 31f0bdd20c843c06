package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is returned by FailingStorage for injected failures.
var ErrInjected = errors.New("injected storage failure")

// MemoryStorage is an in-memory kv.Storage that records every write.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type MemoryStorage struct {
	mu     sync.Mutex
	data   map[string]string
	writes []Write
}

// Write is one recorded Set call.
type Write struct {
	Key   string
	Value string
}

// NewMemoryStorage creates an empty storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores value under key and records the write.
func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.writes = append(m.writes, Write{Key: key, Value: value})
	return nil
}

// Put stores a value without recording a write. Used to arrange fixtures.
func (m *MemoryStorage) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Raw returns the stored value for key.
func (m *MemoryStorage) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Writes returns a copy of the recorded writes in call order.
func (m *MemoryStorage) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Write, len(m.writes))
	copy(out, m.writes)
	return out
}

// WriteCount returns how many Set calls targeted key.
func (m *MemoryStorage) WriteCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, w := range m.writes {
		if w.Key == key {
			n++
		}
	}
	return n
}

// FailingStorage wraps MemoryStorage and fails reads or writes on demand.
type FailingStorage struct {
	*MemoryStorage
	FailGet bool
	FailSet bool
}

// NewFailingStorage creates a storage that fails the selected operations.
func NewFailingStorage(failGet, failSet bool) *FailingStorage {
	return &FailingStorage{MemoryStorage: NewMemoryStorage(), FailGet: failGet, FailSet: failSet}
}

// Get fails with ErrInjected when FailGet is set.
func (f *FailingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if f.FailGet {
		return "", false, ErrInjected
	}
	return f.MemoryStorage.Get(ctx, key)
}

// Set fails with ErrInjected when FailSet is set. Failed writes are not recorded.
func (f *FailingStorage) Set(ctx context.Context, key, value string) error {
	if f.FailSet {
		return ErrInjected
	}
	return f.MemoryStorage.Set(ctx, key, value)
}
