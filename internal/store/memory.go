package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu       sync.RWMutex
	data     map[string]string
	history  map[string][]VersionEntry
	metadata map[string]string
	closed   bool
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		data:     make(map[string]string),
		history:  make(map[string][]VersionEntry),
		metadata: make(map[string]string),
	}
}

// Get retrieves a definition by name.
func (m *Memory) Get(name string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	src, ok := m.data[name]
	return src, ok, nil
}

// Put stores a definition by name and appends it to the history.
func (m *Memory) Put(name, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[name] = source
	m.history[name] = append(m.history[name], VersionEntry{
		ID:      uuid.NewString(),
		Version: len(m.history[name]) + 1,
		Source:  source,
		Ts:      time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

// Delete removes a definition by name. Its history is kept.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.data, name)
	return nil
}

// Names returns the stored names in sorted order.
func (m *Memory) Names() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	names := make([]string, 0, len(m.data))
	for k := range m.data {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// GetHistory returns the versions stored under name, oldest first.
func (m *Memory) GetHistory(name string, limit int) ([]VersionEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	entries := m.history[name]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]VersionEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// Close marks the store closed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// GetMetadata retrieves a metadata value by key.
func (m *Memory) GetMetadata(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metadata[key], nil
}

// SetMetadata stores a metadata value by key.
func (m *Memory) SetMetadata(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata[key] = value
	return nil
}
