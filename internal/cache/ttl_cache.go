package cache

import (
	"sync"
	"time"

	"github.com/bbernstein/meetpoint/backend-go/internal/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
)

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a size-bounded LRU whose entries also expire after a fixed TTL
type TTLCache[V any] struct {
	name  string
	lru   *lru.Cache[string, ttlEntry[V]]
	ttl   time.Duration
	clock clock
	mu    sync.Mutex
}

func NewTTLCache[V any](name string, size int, ttl time.Duration) (*TTLCache[V], error) {
	l, err := lru.New[string, ttlEntry[V]](size)
	if err != nil {
		return nil, err
	}

	return &TTLCache[V]{
		name:  name,
		lru:   l,
		ttl:   ttl,
		clock: systemClock{},
	}, nil
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, ok := c.lru.Get(key)
	if !ok {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		return zero, false
	}

	if c.clock.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
		return zero, false
	}

	metrics.CacheHits.WithLabelValues(c.name).Inc()
	return entry.value, true
}

func (c *TTLCache[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(key, ttlEntry[V]{
		value:     value,
		expiresAt: c.clock.Now().Add(c.ttl),
	})
}

func (c *TTLCache[V]) Len() int {
	return c.lru.Len()
}

func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}
