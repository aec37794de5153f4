package store

import "context"

// Memory is an in-process key-value store. Nothing survives the process.
type Memory struct {
	values map[string]string
	writes int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

// Get implements favorites.KV.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements favorites.KV.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns how many times Set was called.
func (m *Memory) Writes() int {
	return m.writes
}
