package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
)

// Ensure DatasetCache implements the interface.
var _ driven.DatasetCache = (*DatasetCache)(nil)

type cachedDataset struct {
	dataset   domain.Dataset
	expiresAt time.Time
}

// DatasetCache is an in-memory implementation of driven.DatasetCache.
// Datasets live for the process lifetime or until their TTL passes.
type DatasetCache struct {
	mu      sync.RWMutex
	entries map[string]cachedDataset
	ttl     time.Duration
	now     func() time.Time
}

// NewDatasetCache creates a new in-memory dataset cache.
// A zero ttl keeps entries until deleted.
func NewDatasetCache(ttl time.Duration) *DatasetCache {
	return &DatasetCache{
		entries: make(map[string]cachedDataset),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the cached dataset.
func (c *DatasetCache) Get(_ context.Context, categoryID string) (*domain.Dataset, error) {
	c.mu.RLock()
	entry, ok := c.entries[categoryID]
	c.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, categoryID)
		c.mu.Unlock()
		return nil, domain.ErrNotFound
	}

	ds := entry.dataset
	ds.Records = slices.Clone(ds.Records)
	return &ds, nil
}

// Put stores a copy of the dataset.
func (c *DatasetCache) Put(_ context.Context, dataset *domain.Dataset) error {
	if dataset == nil {
		return domain.ErrInvalidInput
	}

	entry := cachedDataset{dataset: *dataset}
	entry.dataset.Records = slices.Clone(dataset.Records)
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[dataset.CategoryID] = entry
	return nil
}

// Delete removes the cached dataset.
func (c *DatasetCache) Delete(_ context.Context, categoryID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, categoryID)
	return nil
}

// Len returns the number of cached datasets, including expired ones not yet evicted.
func (c *DatasetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close drops every entry.
func (c *DatasetCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cachedDataset)
	return nil
}
