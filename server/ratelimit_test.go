package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterBurstPerKey(t *testing.T) {
	rl := NewRateLimiter(3, nil)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("a"))
	}
	require.False(t, rl.Allow("a"))
	require.True(t, rl.Allow("b"))
	require.Equal(t, 2, rl.Len())
	require.Equal(t, 20, rl.retryAfter())
}

func TestRateLimiterCleanupDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(5, nil)
	defer rl.Stop()

	rl.Allow("idle")
	rl.Allow("busy")

	rl.mu.Lock()
	rl.limiters["idle"].lastAccess = time.Now().Add(-3 * rl.cleanupInterval)
	rl.mu.Unlock()

	rl.cleanup(time.Now())
	require.Equal(t, 1, rl.Len())
}

func TestRateLimiterStopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(5, nil)
	rl.Stop()
	rl.Stop()
}
