package placeholders

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash"
)

// Cache keeps recently parsed templates with LRU eviction. Entries are keyed
// by the xxhash fingerprint of the template text; only successful parses are
// stored. A Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	entries map[uint64]*list.Element
	order   *list.List // front is most recently used
	stats   CacheStats
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

type cacheEntry struct {
	key    uint64
	parsed ParsedTemplate
}

// NewCache creates a cache holding at most maxSize templates. A maxSize of
// zero or less disables storage; Parse then always parses.
func NewCache(maxSize int) *Cache {
	return &Cache{
		maxSize: maxSize,
		entries: make(map[uint64]*list.Element),
		order:   list.New(),
	}
}

// Parse returns the cached result for query, parsing and storing it on a miss.
func (c *Cache) Parse(query string) (pt ParsedTemplate, err error) {
	var ok bool

	key := xxhash.Sum64String(query)

	pt, ok = c.get(key, query)
	if ok {
		goto end
	}

	pt, err = ParseQuery(query)
	if err != nil {
		goto end
	}
	c.add(key, pt)
end:
	return pt, err
}

func (c *Cache) get(key uint64, query string) (pt ParsedTemplate, ok bool) {
	var el *list.Element
	var entry *cacheEntry

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok = c.entries[key]
	if !ok {
		c.stats.Misses++
		goto end
	}
	entry = el.Value.(*cacheEntry)
	if entry.parsed.Query() != query {
		// Fingerprint collision.
		ok = false
		c.stats.Misses++
		goto end
	}
	c.order.MoveToFront(el)
	c.stats.Hits++
	pt = entry.parsed
end:
	return pt, ok
}

func (c *Cache) add(key uint64, pt ParsedTemplate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize <= 0 {
		return
	}
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).parsed = pt
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() >= c.maxSize {
		c.evictLRU()
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, parsed: pt})
}

// evictLRU must be called with c.mu locked.
func (c *Cache) evictLRU() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.entries, el.Value.(*cacheEntry).key)
	c.stats.Evictions++
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = c.order.Len()
	return stats
}

// Reset drops every entry and zeroes the counters.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[uint64]*list.Element)
	c.order.Init()
	c.stats = CacheStats{}
}
