package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
	"github.com/custodia-labs/kwscope/internal/logger"
)

// KeyPrefix is prepended to every category ID stored in Redis.
const KeyPrefix = "kwscope:dataset:"

var _ driven.DatasetCache = (*DatasetCache)(nil)

// DatasetCache stores each dataset as one JSON value with an optional TTL.
type DatasetCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// Connect dials addr and verifies the server answers a PING.
func Connect(ctx context.Context, addr string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis at %s: %v", domain.ErrCacheUnavailable, addr, err)
	}
	return client, nil
}

// NewDatasetCache wraps a connected client. A zero ttl keeps entries until deleted.
func NewDatasetCache(client *goredis.Client, ttl time.Duration) *DatasetCache {
	return &DatasetCache{client: client, ttl: ttl}
}

func key(categoryID string) string {
	return KeyPrefix + categoryID
}

// Get returns the cached dataset or domain.ErrNotFound.
func (c *DatasetCache) Get(ctx context.Context, categoryID string) (*domain.Dataset, error) {
	raw, err := c.client.Get(ctx, key(categoryID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		logger.Warn("dropping undecodable cache entry %s: %v", categoryID, err)
		_ = c.client.Del(ctx, key(categoryID)).Err()
		return nil, domain.ErrNotFound
	}
	if ds.Records == nil {
		ds.Records = []domain.KeywordRecord{}
	}
	logger.Debug("redis cache hit for %s (%d records)", categoryID, len(ds.Records))
	return &ds, nil
}

// Put stores the dataset, replacing any earlier snapshot.
func (c *DatasetCache) Put(ctx context.Context, dataset *domain.Dataset) error {
	if dataset == nil {
		return domain.ErrInvalidInput
	}
	raw, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("encoding dataset %s: %w", dataset.CategoryID, err)
	}
	if err := c.client.Set(ctx, key(dataset.CategoryID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Delete removes the entry for a category. Missing keys are not an error.
func (c *DatasetCache) Delete(ctx context.Context, categoryID string) error {
	if err := c.client.Del(ctx, key(categoryID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Clear removes every kwscope dataset key.
func (c *DatasetCache) Clear(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, KeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// Close closes the client.
func (c *DatasetCache) Close() error {
	return c.client.Close()
}
