// Package cooldown enforces a per-submitter minimum interval between writes.
package cooldown

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Gate hands out one token-bucket limiter per client key (IP) and prunes
// buckets that have gone idle.
type Gate struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time

	every time.Duration
	burst int
	idle  time.Duration
}

// New creates a gate allowing burst immediate actions per key, refilling one
// every interval. Buckets idle longer than idle are dropped.
func New(every time.Duration, burst int, idle time.Duration) *Gate {
	g := &Gate{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		every:    every,
		burst:    burst,
		idle:     idle,
	}
	go g.cleanup()
	return g
}

// Allow reports whether key may act now, consuming a token if so.
func (g *Gate) Allow(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	limiter, ok := g.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(g.every), g.burst)
		g.limiters[key] = limiter
	}
	g.lastSeen[key] = time.Now()
	return limiter.Allow()
}

func (g *Gate) cleanup() {
	for range time.Tick(time.Hour) {
		g.mu.Lock()
		cutoff := time.Now().Add(-g.idle)
		for key, seen := range g.lastSeen {
			if seen.Before(cutoff) {
				delete(g.limiters, key)
				delete(g.lastSeen, key)
			}
		}
		g.mu.Unlock()
	}
}
