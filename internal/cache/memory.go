package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache with TTL expiry.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates a memory cache with the given default TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{store: gocache.New(ttl, 10*time.Minute)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	if val, found := m.store.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

func (m *Memory) Clear() error {
	m.store.Flush()
	return nil
}
