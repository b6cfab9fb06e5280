package store

import (
	"sync"
	"time"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu      sync.RWMutex
	data    map[string]Entry
	history map[string][]VersionEntry
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data:    make(map[string]Entry),
		history: make(map[string][]VersionEntry),
	}
}

// Get retrieves an entry by key.
func (m *Memory) Get(key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.data[key]; ok {
		return &e, nil
	}
	return nil, nil
}

// Put stores a value by key.
func (m *Memory) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = Entry{Key: key, Value: value, Ts: now()}
	return nil
}

// Delete removes an entry by key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

// Record appends key to the history of name.
func (m *Memory) Record(name, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	versions := m.history[name]
	if n := len(versions); n > 0 && versions[n-1].Key == key {
		return nil
	}
	m.history[name] = append(versions, VersionEntry{Version: len(versions) + 1, Key: key, Ts: now()})
	return nil
}

// GetHistory returns the versions of name, newest first.
func (m *Memory) GetHistory(name string, limit int) ([]VersionEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	versions := m.history[name]
	var result []VersionEntry
	for i := len(versions) - 1; i >= 0; i-- {
		if limit > 0 && len(result) == limit {
			break
		}
		result = append(result, versions[i])
	}
	return result, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
