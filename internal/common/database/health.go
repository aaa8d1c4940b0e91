// internal/common/database/health.go
package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"rural-assist/internal/common/logger"
)

// Pinger is a named backing store that can report its health.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// RetryPolicy controls WaitReady backoff.
type RetryPolicy struct {
	Attempts uint64
	Base     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 5, Base: time.Second}
}

// WaitReady pings p with Fibonacci backoff until it answers or the
// attempts run out.
func WaitReady(ctx context.Context, p Pinger, policy RetryPolicy, log logger.Logger) error {
	b := retry.WithMaxRetries(policy.Attempts, retry.NewFibonacci(policy.Base))
	attempt := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if err := p.Ping(ctx); err != nil {
			log.Warn("backing store not ready", map[string]interface{}{
				"store":   p.Name(),
				"attempt": attempt,
				"error":   err.Error(),
			})
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s not ready after %d attempts: %w", p.Name(), attempt, err)
	}
	log.Info("backing store ready", map[string]interface{}{"store": p.Name()})
	return nil
}

// CheckAll pings every store concurrently. The map holds "ok" or the
// error text per store name.
func CheckAll(ctx context.Context, timeout time.Duration, pingers ...Pinger) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var mu sync.Mutex
	status := make(map[string]string, len(pingers))
	healthy := true

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range pingers {
		if p == nil {
			continue
		}
		p := p
		g.Go(func() error {
			result := "ok"
			if err := p.Ping(gctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			status[p.Name()] = result
			if result != "ok" {
				healthy = false
			}
			return nil
		})
	}
	_ = g.Wait()
	return status, healthy
}

// Names lists store names in order, for logging.
func Names(pingers ...Pinger) []string {
	var out []string
	for _, p := range pingers {
		if p != nil {
			out = append(out, p.Name())
		}
	}
	sort.Strings(out)
	return out
}
