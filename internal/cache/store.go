// Package cache keeps GET responses of the API and drops them when a
// mutation touches the same resources.
package cache

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Store is a byte cache with prefix invalidation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Key identifies a query by endpoint path and parameters. Parameters are
// sorted so equal queries share a key.
func Key(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

type entry struct {
	value   []byte
	expires time.Time
}

// MemoryStore is the in-process Store used when Redis is disabled and in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[string]entry{}, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
