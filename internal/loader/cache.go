package loader

import (
	"context"
	"sync"
	"time"

	"PnLBoard/internal/model"
)

// Snapshot is an immutable load result plus the time it was fetched.
type Snapshot struct {
	Dataset   model.Dataset
	FetchedAt time.Time
}

// LoadFunc produces a fresh dataset on a cache miss.
type LoadFunc func(ctx context.Context) (model.Dataset, error)

// Cache memoizes load results per key for a bounded time window. It is an
// explicit object passed to whoever composes the loader and the presentation
// layer; there is no package-level state.
type Cache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]*entry

	now func() time.Time
}

type entry struct {
	mu        sync.Mutex
	snapshot  *Snapshot
	expiresAt time.Time
}

// NewCache creates a cache with the given time-to-live per entry.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (c *Cache) entryFor(key string) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// GetOrLoad returns the memoized snapshot for key, loading at most once per
// expiry window. Concurrent callers on a cold key block on the entry lock and
// share the single in-flight load's result. Failed loads are not memoized.
func (c *Cache) GetOrLoad(ctx context.Context, key string, load LoadFunc) (*Snapshot, error) {
	e := c.entryFor(key)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snapshot != nil && c.now().Before(e.expiresAt) {
		return e.snapshot, nil
	}

	ds, err := load(ctx)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Dataset: ds, FetchedAt: c.now()}
	e.snapshot = snap
	e.expiresAt = snap.FetchedAt.Add(c.ttl)
	return snap, nil
}

// Invalidate drops the memo for key. By the time it returns, any subsequent
// GetOrLoad performs a fresh fetch regardless of remaining TTL.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
