package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Admission
// ==========================

func TestLimiter_AdmitsWithinBudget(t *testing.T) {
	l := New(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(ctx, "data_gov"))
	}
	assert.Equal(t, 3, l.Count("data_gov"))
	assert.Equal(t, 0, l.Count("postal"), "counters are keyed by API name")
}

func TestLimiter_ResetsAfterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	l := New(2, WithClock(clock))

	require.NoError(t, l.Wait(context.Background(), "abdm"))
	require.NoError(t, l.Wait(context.Background(), "abdm"))
	assert.Equal(t, 2, l.Count("abdm"))

	mu.Lock()
	now = now.Add(61 * time.Second)
	mu.Unlock()

	assert.Equal(t, 0, l.Count("abdm"))
	require.NoError(t, l.Wait(context.Background(), "abdm"))
	assert.Equal(t, 1, l.Count("abdm"))
}

// ==========================
// Blocking
// ==========================

func TestLimiter_BlocksUntilWindowResets(t *testing.T) {
	var waits []string
	l := New(1,
		WithWindow(80*time.Millisecond),
		WithWaitHook(func(api string, _ time.Duration) { waits = append(waits, api) }),
	)
	ctx := context.Background()

	require.NoError(t, l.Wait(ctx, "postal"))

	start := time.Now()
	require.NoError(t, l.Wait(ctx, "postal"))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Equal(t, []string{"postal"}, waits)
	assert.Equal(t, 1, l.Count("postal"))
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := New(1, WithWindow(time.Hour))
	require.NoError(t, l.Wait(context.Background(), "data_gov"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, "data_gov")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, l.Count("data_gov"), "rejected callers are not counted")
}

func TestLimiter_ConcurrentCallers(t *testing.T) {
	l := New(50, WithWindow(time.Hour))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Wait(ctx, "data_gov")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, l.Count("data_gov"))
}

func TestNew_ClampsLimit(t *testing.T) {
	assert.Equal(t, 1, New(0).Limit())
	assert.Equal(t, 100, New(100).Limit())
}
