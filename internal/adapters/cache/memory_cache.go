package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mikey/email-utils/internal/core"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no entry exists for a domain
	ErrNotFound = errors.New("cache entry not found")
	// ErrExpired is returned when the entry for a domain is past its expiry
	ErrExpired = errors.New("cache entry expired")
)

// MemoryCache keeps MX lookup results in a map for the life of the process
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]core.MXCacheEntry
	logger  *zap.Logger
	janitor *janitor
}

// NewMemoryCache creates a new in-memory cache, sweeping expired entries
// every cleanupFreq when it is positive
func NewMemoryCache(logger *zap.Logger, cleanupFreq time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]core.MXCacheEntry),
		logger:  logger,
	}
	c.janitor = startJanitor(cleanupFreq, c.Cleanup, logger)
	return c
}

// Get returns the entry for domain. An expired entry is dropped and
// reported as ErrExpired.
func (c *MemoryCache) Get(ctx context.Context, domain string) (*core.MXCacheEntry, error) {
	key := cacheKey(domain)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, ErrNotFound
	}

	if !time.Now().Before(entry.ExpiresAt) {
		delete(c.entries, key)
		return nil, ErrExpired
	}

	return &entry, nil
}

// Set stores a copy of entry under its domain
func (c *MemoryCache) Set(ctx context.Context, entry *core.MXCacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(entry.Domain)] = *entry
	return nil
}

// Delete removes the entry for domain
func (c *MemoryCache) Delete(ctx context.Context, domain string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, cacheKey(domain))
	return nil
}

// Cleanup removes expired entries
func (c *MemoryCache) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expired := 0
	for key, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, key)
			expired++
		}
	}

	c.logger.Debug("Cleaned up expired MX cache entries",
		zap.Int("expired_count", expired),
		zap.Int("remaining", len(c.entries)))
	return nil
}

// Len returns the number of stored entries, expired or not
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stop stops the background cleanup task
func (c *MemoryCache) Stop() {
	c.janitor.stop()
}
