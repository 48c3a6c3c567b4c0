package server

import (
	"sync"
	"time"
)

// RateLimiter throttles inbound commands per connection with a sliding
// window, so one button-mashing client cannot starve a room.
type RateLimiter struct {
	maxRequests int
	window      time.Duration
	requests    map[string][]time.Time // connectionID → recent request times
	mu          sync.Mutex
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[string][]time.Time),
	}
}

// Allow reports whether the connection may send another command now, and
// records the attempt if so.
func (rl *RateLimiter) Allow(connectionID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	recent := rl.requests[connectionID][:0]
	for _, ts := range rl.requests[connectionID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= rl.maxRequests {
		rl.requests[connectionID] = recent
		return false
	}

	rl.requests[connectionID] = append(recent, now)
	return true
}

// Forget drops a closed connection's window state.
func (rl *RateLimiter) Forget(connectionID string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.requests, connectionID)
}
