// Package cache keeps solved results for repeated requests.
package cache

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/zeebo/blake3"
)

// Cache is a TTL cache of values of type V keyed by content digests.
type Cache[V any] struct {
	items *gocache.Cache
	ttl   time.Duration
}

// New creates a Cache whose entries expire after ttl. A non-positive ttl
// disables caching.
func New[V any](ttl time.Duration) *Cache[V] {
	cleanup := 2 * ttl
	if ttl <= 0 {
		cleanup = 0
	}
	return &Cache[V]{
		items: gocache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// Enabled reports whether entries are kept.
func (c *Cache[V]) Enabled() bool { return c.ttl > 0 }

// Get returns the value stored under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if !c.Enabled() {
		return zero, false
	}
	obj, found := c.items.Get(key)
	if !found {
		return zero, false
	}
	v, ok := obj.(V)
	return v, ok
}

// Set stores v under key for the cache's ttl.
func (c *Cache[V]) Set(key string, v V) {
	if !c.Enabled() {
		return
	}
	c.items.Set(key, v, gocache.DefaultExpiration)
}

// Len returns the number of stored entries, expired ones included until
// they are cleaned up.
func (c *Cache[V]) Len() int { return c.items.ItemCount() }

// Clear drops every entry.
func (c *Cache[V]) Clear() { c.items.Flush() }

// Key digests parts into a cache key. Parts are length-prefixed so that
// ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	h := blake3.New()
	var size [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(size[:], uint64(len(p)))
		_, _ = h.Write(size[:])
		_, _ = h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
