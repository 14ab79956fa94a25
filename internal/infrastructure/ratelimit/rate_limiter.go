package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rule is a sustained rate plus burst for one action.
type Rule struct {
	PerMinute int
	Burst     int
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key and action.
type RateLimiter struct {
	rules    map[string]Rule
	fallback Rule
	buckets  map[string]*entry
	mutex    sync.Mutex
	now      func() time.Time
}

func NewRateLimiter(rules map[string]Rule) *RateLimiter {
	return &RateLimiter{
		rules:    rules,
		fallback: Rule{PerMinute: 20, Burst: 20},
		buckets:  make(map[string]*entry),
		now:      time.Now,
	}
}

func (rl *RateLimiter) rule(action string) Rule {
	if r, ok := rl.rules[action]; ok && r.PerMinute > 0 {
		if r.Burst <= 0 {
			r.Burst = r.PerMinute
		}
		return r
	}
	return rl.fallback
}

// Allow consumes a token for key/action, or reports how long to wait.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	now := rl.now()
	bucketKey := key + ":" + action

	rl.mutex.Lock()
	e, ok := rl.buckets[bucketKey]
	if !ok {
		r := rl.rule(action)
		e = &entry{limiter: rate.NewLimiter(rate.Limit(float64(r.PerMinute)/60), r.Burst)}
		rl.buckets[bucketKey] = e
	}
	e.lastSeen = now
	rl.mutex.Unlock()

	res := e.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Minute
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup removes buckets idle for longer than idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, e := range rl.buckets {
		if now.Sub(e.lastSeen) > idle {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-ctx.Done():
				return
			}
		}
	}()
}
