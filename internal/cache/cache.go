// Package cache is an in-process, TTL-evicted result cache keyed by
// source-content hash. It holds each file's finished, immutable pipeline
// result (diagnostics, formatted output), never the arena-owned AST or
// semantic model, which must not cross goroutines. Memory only: nothing
// is ever persisted.
package cache

import (
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Cache is a lock-free concurrent cache shared by the driver's workers.
type Cache struct {
	entries     sync.Map // hash -> *entry
	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	maxAge      time.Duration
	cleanupOnce sync.Once
}

type entry struct {
	value     any
	timestamp time.Time
	hitCount  atomic.Int32
}

// New creates a cache with the given entry lifetime.
func New(maxAge time.Duration) *Cache {
	return &Cache{maxAge: maxAge}
}

// Key hashes source content. blake2b is much faster than SHA-256 at
// typical source-file sizes, and this sits on the hot path of every
// re-lint in watch-style drivers.
func Key(source []byte) string {
	sum := blake2b.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached value for key if present and fresh.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	e := v.(*entry)
	if c.maxAge > 0 && time.Since(e.timestamp) > c.maxAge {
		c.entries.Delete(key)
		c.evictions.Add(1)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	e.hitCount.Add(1)
	return e.value, true
}

// Put stores value under key and starts the single background sweeper on
// first use.
func (c *Cache) Put(key string, value any) {
	c.entries.Store(key, &entry{value: value, timestamp: time.Now()})
	if c.maxAge > 0 {
		c.cleanupOnce.Do(func() {
			go c.sweep()
		})
	}
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(c.maxAge)
	defer ticker.Stop()
	for {
		c.pruneExpired()
		<-ticker.C
	}
}

func (c *Cache) pruneExpired() {
	now := time.Now()
	c.entries.Range(func(key, value any) bool {
		e := value.(*entry)
		if now.Sub(e.timestamp) > c.maxAge {
			c.entries.Delete(key)
			c.evictions.Add(1)
		}
		return true
	})
}

// Stats reports cache counters.
func (c *Cache) Stats() map[string]int64 {
	return map[string]int64{
		"hits":      c.hits.Load(),
		"misses":    c.misses.Load(),
		"evictions": c.evictions.Load(),
	}
}
