package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_ExhaustsTokens(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.Close()

	assert.True(t, rl.tryAcquire())
	assert.True(t, rl.tryAcquire())
	assert.False(t, rl.tryAcquire())
}

func TestRateLimiter_WaitHonorsContext(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Close()

	require.NoError(t, rl.wait(context.Background()))

	// Bucket is empty; wait must give up when the context does.
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := rl.wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_RateLimitedClientIsCloseable(t *testing.T) {
	client, err := NewClient(Config{Provider: "openai", APIKey: "test-key", RateLimit: 5})
	require.NoError(t, err)

	closer, ok := client.(interface{ Close() error })
	require.True(t, ok, "rate limited client must expose Close")
	require.NoError(t, closer.Close())
}
