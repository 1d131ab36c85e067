package enrichment

import (
	"context"
	"sync"

	"lendingapi/internal/book"
)

// cacheEntry distinguishes "the service has no data" (present, data nil) from
// "never asked". Failed lookups are never stored, so a temporary outage does
// not become a permanent absence.
type cacheEntry struct {
	data *Data
}

// CachingSource memoizes lookups of an underlying Source per ISBN. Entries
// never expire and are never evicted; the keyspace is bounded by the books
// actually added.
type CachingSource struct {
	source  Source
	mu      sync.Mutex
	entries map[book.ISBN]cacheEntry
}

func NewCachingSource(source Source) *CachingSource {
	return &CachingSource{
		source:  source,
		entries: make(map[book.ISBN]cacheEntry),
	}
}

func (c *CachingSource) ByISBN(ctx context.Context, isbn book.ISBN) (*Data, error) {
	c.mu.Lock()
	if entry, ok := c.entries[isbn]; ok {
		c.mu.Unlock()
		return entry.data, nil
	}
	c.mu.Unlock()

	data, err := c.source.ByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[isbn] = cacheEntry{data: data}
	c.mu.Unlock()
	return data, nil
}
