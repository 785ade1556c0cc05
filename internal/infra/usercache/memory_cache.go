package usercache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/accounts/internal/domain/account"
	"github.com/yanqian/accounts/pkg/util"
)

type cachedEntry struct {
	record    account.Record
	expiresAt time.Time
}

func (e cachedEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is an in-process RecordCache for tests/dev.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cachedEntry
}

// NewMemoryCache constructs a cache; ttl <= 0 keeps entries forever.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]cachedEntry)}
}

// Get implements RecordCache.
func (c *MemoryCache) Get(_ context.Context, email string) (account.Record, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[email]
	c.mu.RUnlock()
	if !ok {
		return account.Record{}, false, nil
	}
	if now := util.NowUTC(); entry.expired(now) {
		c.evictExpired(email, now)
		return account.Record{}, false, nil
	}
	return entry.record, true, nil
}

// evictExpired deletes email only if the entry held under the write lock has
// expired, so a Set landing between Get's read and this call survives.
func (c *MemoryCache) evictExpired(email string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[email]; ok && entry.expired(now) {
		delete(c.entries, email)
	}
}

// Set implements RecordCache.
func (c *MemoryCache) Set(_ context.Context, record account.Record) error {
	entry := cachedEntry{record: record}
	if c.ttl > 0 {
		entry.expiresAt = util.NowUTC().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[record.Email] = entry
	c.mu.Unlock()
	return nil
}

var _ RecordCache = (*MemoryCache)(nil)
