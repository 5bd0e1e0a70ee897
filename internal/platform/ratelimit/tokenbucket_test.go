package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/ratelimit"
)

func TestTokenBucketLimiter_AllowsWithinWindowThenBlocks(t *testing.T) {
	limiter := ratelimit.NewTokenBucketLimiter(ratelimit.Rate{Limit: 3, Period: time.Minute}, nil)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(context.Background(), "/discovery/like", "user-1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i)
	}

	allowed, retryAfter, err := limiter.Allow(context.Background(), "/discovery/like", "user-1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, 0)
}

func TestTokenBucketLimiter_IsolatesByIdentity(t *testing.T) {
	limiter := ratelimit.NewTokenBucketLimiter(ratelimit.Rate{Limit: 1, Period: time.Minute}, nil)
	defer limiter.Stop()

	allowed1, _, _ := limiter.Allow(context.Background(), "/discovery/like", "user-1")
	allowed2, _, _ := limiter.Allow(context.Background(), "/discovery/like", "user-2")

	assert.True(t, allowed1)
	assert.True(t, allowed2)
}
