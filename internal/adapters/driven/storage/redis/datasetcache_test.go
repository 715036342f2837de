package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// testClient returns a client on DB 15. Skips if Redis is unavailable.
func testClient(t *testing.T) *goredis.Client {
	t.Helper()

	addr := os.Getenv("KWSCOPE_TEST_REDIS")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := Connect(ctx, addr, 15)
	if err != nil {
		t.Skipf("skipping integration test: redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, KeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		_ = client.Close()
	})

	return client
}

func testDataset(id string) *domain.Dataset {
	return &domain.Dataset{
		CategoryID:   id,
		CategoryName: "Fashion",
		LoadedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Records: []domain.KeywordRecord{
			{ID: "a", Text: "red shoes", SearchVolume: 5000, ProductCount: 12, Competition: domain.CompetitionHigh,
				Trend: domain.TrendSeries{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, IsBrand: true, SearchType: domain.SearchTypeShopping},
			{ID: "b", Text: "how to lace shoes", SearchVolume: 800, Competition: domain.CompetitionLow,
				SearchType: domain.SearchTypeInformational},
		},
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "kwscope:dataset:fashion", key("fashion"))
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := Connect(ctx, "127.0.0.1:1", 0)

	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestDatasetCache_PutNil(t *testing.T) {
	c := NewDatasetCache(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"}), 0)
	defer c.Close()

	assert.ErrorIs(t, c.Put(context.Background(), nil), domain.ErrInvalidInput)
}

func TestDatasetCache_RoundTrip(t *testing.T) {
	c := NewDatasetCache(testClient(t), time.Minute)
	ctx := context.Background()
	want := testDataset("fashion")

	require.NoError(t, c.Put(ctx, want))

	got, err := c.Get(ctx, "fashion")
	require.NoError(t, err)
	assert.Equal(t, want.CategoryName, got.CategoryName)
	assert.Equal(t, want.Records, got.Records)
	assert.True(t, want.LoadedAt.Equal(got.LoadedAt))
}

func TestDatasetCache_Miss(t *testing.T) {
	c := NewDatasetCache(testClient(t), 0)

	_, err := c.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDatasetCache_TTLApplied(t *testing.T) {
	client := testClient(t)
	c := NewDatasetCache(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, testDataset("fashion")))

	ttl, err := client.TTL(ctx, key("fashion")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)
}

func TestDatasetCache_DeleteAndClear(t *testing.T) {
	c := NewDatasetCache(testClient(t), 0)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, testDataset("fashion")))
	require.NoError(t, c.Put(ctx, testDataset("beauty")))
	require.NoError(t, c.Delete(ctx, "fashion"))
	require.NoError(t, c.Delete(ctx, "never-stored"))

	_, err := c.Get(ctx, "fashion")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	n, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = c.Get(ctx, "beauty")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDatasetCache_CorruptEntryIsMiss(t *testing.T) {
	client := testClient(t)
	c := NewDatasetCache(client, 0)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, key("fashion"), "{not json", 0).Err())

	_, err := c.Get(ctx, "fashion")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	exists, err := client.Exists(ctx, key("fashion")).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
