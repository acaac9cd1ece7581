// Package cache provides a small LRU for similarity query results. The
// matrix answers a query in milliseconds, but HTTP traffic tends to hit
// the same handful of passages repeatedly, so recent result lists are
// kept keyed by reference and count.
package cache

import (
	"fmt"
	"sync"

	"versesim/internal/domain"
)

type QueryCache struct {
	mu      sync.Mutex
	entries map[string][]domain.ScoredVerse
	order   []string
	maxSize int
}

func NewQueryCache(maxSize int) *QueryCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &QueryCache{
		entries: make(map[string][]domain.ScoredVerse),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func cacheKey(ref string, count int) string {
	return fmt.Sprintf("%s\x00%d", ref, count)
}

func (c *QueryCache) Get(ref string, count int) ([]domain.ScoredVerse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(ref, count)
	results, exists := c.entries[key]
	if !exists {
		return nil, false
	}
	c.moveToEnd(key)
	return results, true
}

func (c *QueryCache) Put(ref string, count int, results []domain.ScoredVerse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(ref, count)
	if _, exists := c.entries[key]; exists {
		c.entries[key] = results
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = results
	c.order = append(c.order, key)
}

func (c *QueryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *QueryCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *QueryCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *QueryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Searcher answers similarity queries. Failed queries are never cached,
// so an unknown reference stays an error on every call.
type Searcher interface {
	Similar(ref string, count int) ([]domain.ScoredVerse, error)
}

type CachedSearcher struct {
	searcher Searcher
	cache    *QueryCache
}

func NewCachedSearcher(searcher Searcher, cache *QueryCache) *CachedSearcher {
	return &CachedSearcher{
		searcher: searcher,
		cache:    cache,
	}
}

func (s *CachedSearcher) Similar(ref string, count int) ([]domain.ScoredVerse, error) {
	if results, hit := s.cache.Get(ref, count); hit {
		return results, nil
	}

	results, err := s.searcher.Similar(ref, count)
	if err != nil {
		return nil, err
	}

	s.cache.Put(ref, count, results)

	return results, nil
}
