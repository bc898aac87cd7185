// Package cache stores fetched pages so repeated audits of the same URL
// skip the network entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/web4all/web4all/internal/model"
)

// Cache is the storage interface shared by the memory and disk layers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "web4all:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds the cache described by the configuration: memory
// only by default, layered with disk persistence when a directory is
// set, nil when caching is disabled.
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir != "" {
		return NewLayered(cfg.TTL, cfg.Dir)
	}
	return NewMemory(cfg.TTL)
}
