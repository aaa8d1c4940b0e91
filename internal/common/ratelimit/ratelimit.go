// Package ratelimit implements a per-API fixed-window request budget shared
// by every goroutine in the process.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultWindow is the length of one budget window.
const DefaultWindow = time.Minute

type window struct {
	count   int
	started time.Time
}

// Limiter admits at most limit calls per API name in each window. A caller
// over budget blocks until the window resets.
type Limiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	counters map[string]*window
	now      func() time.Time
	onWait   func(api string, wait time.Duration)
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithWindow overrides DefaultWindow.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) { l.window = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithWaitHook is called every time a caller must wait for a window reset.
func WithWaitHook(fn func(api string, wait time.Duration)) Option {
	return func(l *Limiter) { l.onWait = fn }
}

// New creates a limiter with limit calls per window. A limit below 1 is treated as 1.
func New(limit int, opts ...Option) *Limiter {
	if limit < 1 {
		limit = 1
	}
	l := &Limiter{
		limit:    limit,
		window:   DefaultWindow,
		counters: make(map[string]*window),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until a call to api is admitted or ctx is done.
func (l *Limiter) Wait(ctx context.Context, api string) error {
	for {
		wait, admitted := l.tryAdmit(api)
		if admitted {
			return nil
		}

		if l.onWait != nil {
			l.onWait(api, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// tryAdmit counts the call if the budget allows it, or reports how long
// until the current window resets.
func (l *Limiter) tryAdmit(api string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.counters[api]
	if !ok || now.Sub(w.started) >= l.window {
		w = &window{started: now}
		l.counters[api] = w
	}

	if w.count < l.limit {
		w.count++
		return 0, true
	}
	return w.started.Add(l.window).Sub(now), false
}

// Count returns the calls admitted for api in its current window.
func (l *Limiter) Count(api string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.counters[api]
	if !ok || l.now().Sub(w.started) >= l.window {
		return 0
	}
	return w.count
}

// Limit returns the per-window budget.
func (l *Limiter) Limit() int {
	return l.limit
}
