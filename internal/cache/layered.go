package cache

import "time"

// Layered combines the memory and disk caches: reads hit memory first
// and promote disk hits, writes go to both.
type Layered struct {
	memory Cache
	disk   Cache
}

// NewLayered creates a layered cache persisting to dir.
func NewLayered(ttl time.Duration, dir string) *Layered {
	return &Layered{
		memory: NewMemory(ttl),
		disk:   NewDisk(dir, ttl),
	}
}

func (l *Layered) Get(key string) ([]byte, bool) {
	if val, found := l.memory.Get(key); found {
		return val, true
	}
	if val, found := l.disk.Get(key); found {
		_ = l.memory.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

func (l *Layered) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return l.disk.Set(key, value, ttl)
}

func (l *Layered) Delete(key string) error {
	_ = l.memory.Delete(key)
	return l.disk.Delete(key)
}

func (l *Layered) Clear() error {
	_ = l.memory.Clear()
	return l.disk.Clear()
}
