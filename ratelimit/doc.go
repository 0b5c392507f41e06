/*
Package ratelimit provides a fixed-window request limiter for the
vote-submission endpoint.

# Usage

	limiter := ratelimit.New(ratelimit.DefaultLimit, ratelimit.DefaultWindow)
	defer limiter.Stop()

	if !limiter.Allow(clientIP) {
		// respond 429
	}

# Semantics

Each client key gets a counter and a window-start timestamp. The first
request after the window elapses resets both; within a window, requests
past the limit are denied. This is coarse abuse mitigation, not precise
throttling: a burst straddling a window boundary can briefly exceed the
nominal rate, which is acceptable here.

A background goroutine sweeps the map once per window and evicts keys idle
for two full windows, bounding memory under churning client populations.
The limiter is safe for concurrent use; each Allow call takes one wall
clock reading and holds the mutex only for the map update.
*/
package ratelimit
