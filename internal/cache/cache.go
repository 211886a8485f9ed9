// Package cache stores serialized search results so repeat runs do not
// re-spend the provider request budget. Lookups go memory first, then
// disk; a disk hit is promoted back into memory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by both layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// QueryKey derives the cache key for one provider query. Provider name
// is part of the key: the same query against different providers yields
// different result sets.
func QueryKey(provider, query string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + query))
	return "vouch:v1:" + hex.EncodeToString(hash[:])
}
