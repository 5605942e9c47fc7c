// Package cache stores extraction results so re-parsing identical receipt
// text is free.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for parse-result caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from raw receipt text
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "billsplit:v1:" + hex.EncodeToString(hash[:])
}

// NewDefault builds the standard cache: memory-only when no directory is
// configured, memory backed by disk otherwise.
func NewDefault(dir string, ttl time.Duration) Cache {
	if dir == "" {
		return NewMemoryCache(ttl, 10*time.Minute)
	}
	return NewLayeredCache(ttl, dir, ttl)
}
