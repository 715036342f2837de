package adapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Unlimited(t *testing.T) {
	r := NewRateLimiter(0, 0)
	ctx := context.Background()

	start := time.Now()
	for range 50 {
		require.NoError(t, r.Wait(ctx))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestRateLimiter_Paces(t *testing.T) {
	r := NewRateLimiter(20, 1)
	ctx := context.Background()

	start := time.Now()
	for range 3 {
		require.NoError(t, r.Wait(ctx))
	}
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimiter_Backoff(t *testing.T) {
	r := NewRateLimiter(0, 1)
	r.Backoff(50 * time.Millisecond)

	start := time.Now()
	require.NoError(t, r.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	r := NewRateLimiter(0, 1)
	r.Backoff(0)

	assert.WithinDuration(t, time.Now().Add(DefaultBackoff), r.RetryAt(), time.Second)
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	r := NewRateLimiter(0, 1)
	r.Backoff(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.Canceled)
}
