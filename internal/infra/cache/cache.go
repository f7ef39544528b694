// Package cache provides in-memory TTL caches for summaries and headlines.
// Both sit in front of expensive operations: summarization work on one side
// and the quota-limited provider API on the other.
package cache

import (
	"time"

	"newsbrief/internal/domain/entity"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultSummaryTTL keeps computed summaries for a day. Article text
	// does not change once published.
	DefaultSummaryTTL = 24 * time.Hour

	// DefaultHeadlinesTTL keeps headline pages for ten minutes, which
	// keeps a busy instance well inside the provider's daily quota.
	DefaultHeadlinesTTL = 10 * time.Minute

	cleanupInterval = 30 * time.Minute
)

// SummaryCache stores computed summaries keyed by URL fingerprint.
//
// Thread safety: SummaryCache is safe for concurrent use.
type SummaryCache struct {
	cache *gocache.Cache
}

// NewSummaryCache creates a summary cache with the given TTL.
// A non-positive TTL falls back to DefaultSummaryTTL.
func NewSummaryCache(ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &SummaryCache{cache: gocache.New(ttl, cleanupInterval)}
}

// Get retrieves a cached summary.
func (c *SummaryCache) Get(key string) (entity.Summary, bool) {
	if val, found := c.cache.Get(key); found {
		recordLookup("summary", true)
		return val.(entity.Summary), true
	}
	recordLookup("summary", false)
	return entity.Summary{}, false
}

// Set stores a summary under the given key with the default TTL.
func (c *SummaryCache) Set(key string, s entity.Summary) {
	c.cache.SetDefault(key, s)
}

// HeadlinesCache stores headline pages keyed by category.
//
// Thread safety: HeadlinesCache is safe for concurrent use.
type HeadlinesCache struct {
	cache *gocache.Cache
}

// NewHeadlinesCache creates a headlines cache with the given TTL.
// A non-positive TTL falls back to DefaultHeadlinesTTL.
func NewHeadlinesCache(ttl time.Duration) *HeadlinesCache {
	if ttl <= 0 {
		ttl = DefaultHeadlinesTTL
	}
	return &HeadlinesCache{cache: gocache.New(ttl, cleanupInterval)}
}

// Get retrieves a cached headline page.
func (c *HeadlinesCache) Get(key string) ([]entity.Article, bool) {
	if val, found := c.cache.Get(key); found {
		recordLookup("headlines", true)
		return val.([]entity.Article), true
	}
	recordLookup("headlines", false)
	return nil, false
}

// Set stores a headline page under the given key with the default TTL.
func (c *HeadlinesCache) Set(key string, articles []entity.Article) {
	c.cache.SetDefault(key, articles)
}
