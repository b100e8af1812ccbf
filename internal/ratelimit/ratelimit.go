// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit is a fixed-window, per-client request limiter.
//
// Each client key gets a counter that admits up to Max requests, then
// rejects everything until its window ends. Counters live in memory and are
// not shared between instances. Idle entries are evicted by a background
// goroutine bound to the context passed to New.
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// window tracks a single client's counter.
type window struct {
	count   int
	resetAt time.Time
	// logged tracks whether the first-denial hook fired in this window.
	logged bool
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter holds per-client fixed-window counters.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	max    int
	period time.Duration
	now    func() time.Time

	// OnFirstDenied is called once per client and window on the first rejection.
	OnFirstDenied func(key string)

	// OnDenied is called on every rejected request.
	OnDenied func(key string)
}

type Option func(*Limiter)

// WithLimit sets how many requests a client may issue per period.
func WithLimit(max int, period time.Duration) Option {
	return func(l *Limiter) {
		l.max = max
		l.period = period
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

func WithOnFirstDenied(fn func(key string)) Option {
	return func(l *Limiter) {
		l.OnFirstDenied = fn
	}
}

func WithOnDenied(fn func(key string)) Option {
	return func(l *Limiter) {
		l.OnDenied = fn
	}
}

// New creates a Limiter admitting 100 requests per hour unless configured
// otherwise, and starts the eviction goroutine. It stops when ctx is done.
func New(ctx context.Context, opts ...Option) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		max:     100,
		period:  time.Hour,
		now:     time.Now,
	}
	for _, o := range opts {
		o(l)
	}

	go l.cleanup(ctx)
	return l
}

// Allow counts a request for key and reports whether it is admitted.
func (l *Limiter) Allow(key string) Decision {
	l.mu.Lock()
	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(l.period)}
		l.windows[key] = w
	}

	d := Decision{Limit: l.max, ResetAt: w.resetAt}
	if w.count < l.max {
		w.count++
		d.Allowed = true
		d.Remaining = l.max - w.count
		l.mu.Unlock()
		return d
	}

	first := !w.logged
	w.logged = true
	// hooks may be slow, so they run without the lock
	l.mu.Unlock()

	if first && l.OnFirstDenied != nil {
		l.OnFirstDenied(key)
	}
	if l.OnDenied != nil {
		l.OnDenied(key)
	}
	return d
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// evict drops every window that ended before now.
func (l *Limiter) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
}

// cleanup periodically evicts expired windows. Runs every period/2 so an
// entry never outlives its window by much more than that.
func (l *Limiter) cleanup(ctx context.Context) {
	interval := l.period / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evict(l.now())
		}
	}
}

// MiddlewareOptions configures Middleware.
type MiddlewareOptions struct {
	// Key resolves the client identity of a request.
	Key func(r *http.Request) string

	// Skip exempts requests from counting.
	Skip func(r *http.Request) bool

	// Message is the text body of a rejection.
	Message string
}

// Middleware rejects requests over the limit with 429 and the configured
// message. Every counted response carries RateLimit-Limit,
// RateLimit-Remaining and RateLimit-Reset headers.
func (l *Limiter) Middleware(opts MiddlewareOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.Skip != nil && opts.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := r.RemoteAddr
			if opts.Key != nil {
				key = opts.Key(r)
			}

			d := l.Allow(key)
			reset := int(d.ResetAt.Sub(l.now()).Round(time.Second) / time.Second)
			if reset < 0 {
				reset = 0
			}
			w.Header().Set("RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("RateLimit-Reset", strconv.Itoa(reset))

			if !d.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(reset))
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(opts.Message))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
