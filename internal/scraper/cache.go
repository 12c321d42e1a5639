package scraper

import (
	"sync"
	"time"
)

// Cache holds fetched pages keyed by URL with a TTL. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	pages    map[string]*Page
	cachedAt map[string]time.Time
	ttl      time.Duration
}

// NewCache creates an empty cache.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		pages:    make(map[string]*Page),
		cachedAt: make(map[string]time.Time),
		ttl:      ttl,
	}
}

// Get returns the cached page or nil if absent or expired.
func (c *Cache) Get(url string) *Page {
	c.mu.Lock()
	defer c.mu.Unlock()

	page, exists := c.pages[url]
	if !exists {
		return nil
	}

	cachedTime, hasTime := c.cachedAt[url]
	if !hasTime || time.Since(cachedTime) > c.ttl {
		delete(c.pages, url)
		delete(c.cachedAt, url)
		return nil
	}

	return page
}

// Set stores a page.
func (c *Cache) Set(url string, page *Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[url] = page
	c.cachedAt[url] = time.Now()
}

// CleanExpired removes expired entries and returns how many were removed.
func (c *Cache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := time.Now()
	for key, cachedTime := range c.cachedAt {
		if now.Sub(cachedTime) > c.ttl {
			delete(c.pages, key)
			delete(c.cachedAt, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of cached pages.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}
