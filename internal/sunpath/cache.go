package sunpath

import (
	"sync"
	"time"
)

// Cached wraps a SolarPositioner with a thread-safe LRU cache keyed by
// timestamp. Solar position for a fixed location and timestamp is
// deterministic, so caching is purely a performance optimization for
// calculators that revisit the same annual series.
type Cached struct {
	inner SolarPositioner
	cache *lruCache
}

// NewCached creates a cache decorator holding at most maxEntries positions.
func NewCached(inner SolarPositioner, maxEntries int) *Cached {
	return &Cached{inner: inner, cache: newLRUCache(maxEntries)}
}

func (c *Cached) SolarPosition(t time.Time) (float64, float64) {
	key := t.Unix()
	if pos, ok := c.cache.get(key); ok {
		return pos.altitude, pos.azimuth
	}
	alt, az := c.inner.SolarPosition(t)
	c.cache.put(key, position{altitude: alt, azimuth: az})
	return alt, az
}

type position struct {
	altitude float64
	azimuth  float64
}

// lruCache is a simple thread-safe LRU cache for solar positions.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[int64]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   int64
	value position
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[int64]*entry),
	}
}

func (c *lruCache) get(key int64) (position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return position{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key int64, value position) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.pushFront(e)

	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *lruCache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if c.head == e {
		c.head = e.next
	}
	if c.tail == e {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	evicted := c.tail
	c.unlink(evicted)
	delete(c.entries, evicted.key)
}
