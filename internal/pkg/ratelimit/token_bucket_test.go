package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Basic(t *testing.T) {
	bucket := NewTokenBucket(&Config{Capacity: 5, RatePS: 2, RefillRate: time.Hour})
	defer bucket.Stop()

	for i := 0; i < 5; i++ {
		require.True(t, bucket.Allow(), "request %d", i+1)
	}
	require.False(t, bucket.Allow())
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := NewTokenBucket(&Config{Capacity: 2, RatePS: 10, RefillRate: 50 * time.Millisecond})
	defer bucket.Stop()

	require.True(t, bucket.Allow())
	require.True(t, bucket.Allow())
	require.False(t, bucket.Allow())

	require.Eventually(t, bucket.Allow, 2*time.Second, 20*time.Millisecond)
}

func TestTokenBucket_Concurrent(t *testing.T) {
	bucket := NewTokenBucket(&Config{Capacity: 50, RatePS: 1, RefillRate: time.Hour})
	defer bucket.Stop()

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if bucket.Allow() {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(50), allowed.Load())
}
