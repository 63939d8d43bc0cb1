package services

import (
	"sync"
	"time"

	"arkalia-engine/models"
)

// recordCache is a small in-process TTL cache keyed by (entity_type, id).
// Expired entries are dropped lazily on read.
type recordCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	record    *models.PlayerRecord
	expiresAt time.Time
}

func newRecordCache(ttl time.Duration) *recordCache {
	return &recordCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func cacheKey(entityType, id string) string {
	return entityType + ":" + id
}

func (c *recordCache) Get(entityType, id string) (*models.PlayerRecord, bool) {
	key := cacheKey(entityType, id)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.record, true
}

func (c *recordCache) Set(entityType, id string, rec *models.PlayerRecord) {
	c.mu.Lock()
	c.entries[cacheKey(entityType, id)] = cacheEntry{
		record:    rec,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

func (c *recordCache) Delete(entityType, id string) {
	c.mu.Lock()
	delete(c.entries, cacheKey(entityType, id))
	c.mu.Unlock()
}
