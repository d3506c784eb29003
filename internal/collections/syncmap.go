package collections

import (
	"cmp"
	"slices"
	"sync"
)

// SyncMap is a generic map guarded by a read/write mutex.
type SyncMap[K cmp.Ordered, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// NewSyncMap creates an empty SyncMap.
func NewSyncMap[K cmp.Ordered, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value from the map.
func (m *SyncMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

// SetIfAbsent stores value under key unless the key is already present.
// It reports whether the value was stored.
func (m *SyncMap[K, V]) SetIfAbsent(key K, value V) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; exists {
		return false
	}
	m.data[key] = value
	return true
}

// Len returns the number of items in the map.
func (m *SyncMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Keys returns the keys in ascending order.
func (m *SyncMap[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]K, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Range calls f for each key-value pair in key order.
// If f returns false, Range stops the iteration.
func (m *SyncMap[K, V]) Range(f func(key K, value V) bool) {
	for _, k := range m.Keys() {
		v, ok := m.Get(k)
		if !ok {
			continue
		}
		if !f(k, v) {
			return
		}
	}
}
