package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps the workbook in memory.
type MemoryStore struct {
	mu      sync.Mutex
	data    []byte
	exists  bool
	saves   int
	saveErr error
}

// NewMemoryStore returns a store holding data. A nil data means no
// workbook exists yet.
func NewMemoryStore(data []byte) *MemoryStore {
	return &MemoryStore{data: slices.Clone(data), exists: data != nil}
}

func (m *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.exists {
		return nil, ErrNotFound
	}
	return slices.Clone(m.data), nil
}

func (m *MemoryStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = slices.Clone(data)
	m.exists = true
	m.saves++
	return nil
}

// FailSaves makes every following Save return err; nil restores saving.
func (m *MemoryStore) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Saves returns the number of successful saves.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Bytes returns a copy of the stored workbook.
func (m *MemoryStore) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.data)
}
