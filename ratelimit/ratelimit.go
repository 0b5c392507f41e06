package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// Defaults for the vote-submission endpoint.
const (
	DefaultLimit  = 100
	DefaultWindow = 60 * time.Second
)

type entry struct {
	count       int
	windowStart time.Time
}

// Limiter is a fixed-window request limiter keyed by client. Counting is
// approximate (not a sliding log): a key gets at most limit admissions per
// window, and the window restarts on the first request after it elapses.
//
// Entries idle for two full windows are evicted by a background sweep so
// the map stays bounded. Call Stop when shutting down.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	limit  int
	window time.Duration

	stop chan struct{}
	done chan struct{}
}

// New creates a Limiter and starts its sweep loop.
func New(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow reports whether a request from the given client key is admitted
// within the current window.
func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		l.entries[key] = &entry{count: 1, windowStart: now}
		return true
	}

	if now.Sub(e.windowStart) > l.window {
		// Reset window
		e.count = 1
		e.windowStart = now
		return true
	}

	e.count++
	return e.count <= l.limit
}

// Stop terminates the sweep loop. Allow remains safe to call afterwards.
func (l *Limiter) Stop() {
	close(l.stop)
	<-l.done
}

func (l *Limiter) sweep() {
	defer close(l.done)

	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictStale(time.Now())
		case <-l.stop:
			return
		}
	}
}

// evictStale drops entries whose window started more than two windows ago.
func (l *Limiter) evictStale(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, e := range l.entries {
		if now.Sub(e.windowStart) > 2*l.window {
			delete(l.entries, key)
			evicted++
		}
	}

	if evicted > 0 {
		slog.Debug("rate limit entries evicted", "count", evicted, "remaining", len(l.entries))
	}
}

// size reports the number of tracked keys. Test hook.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
