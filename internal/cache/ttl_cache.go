package cache

import (
	"sync"
	"time"
)

// Cache is a minimal TTL cache used to keep compiled markup between a
// preview and the download that usually follows it.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
}

type entry[V any] struct {
	value    V
	deadline time.Time
}

func (e entry[V]) expired(at time.Time) bool {
	return !e.deadline.IsZero() && at.After(e.deadline)
}

// TTLCache is an in-memory cache with per-entry TTLs. Expired entries are
// dropped lazily on lookup and on writes; there is no background sweeper.
type TTLCache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]

	now func() time.Time
}

func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return &TTLCache[K, V]{
		entries: make(map[K]entry[V]),
		now:     time.Now,
	}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set stores a value. A non-positive ttl means the entry never expires.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	at := c.now()
	for k, e := range c.entries {
		if e.expired(at) {
			delete(c.entries, k)
		}
	}

	var deadline time.Time
	if ttl > 0 {
		deadline = at.Add(ttl)
	}
	c.entries[key] = entry[V]{value: value, deadline: deadline}
}

func (c *TTLCache[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
