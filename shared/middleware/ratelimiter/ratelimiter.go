package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter *rate.Limiter
	timer   *time.Timer
}

// UserRateLimiter keeps one token bucket per key (ip, email, ...).
// A key's bucket is dropped after expirationTime without requests.
type UserRateLimiter struct {
	limiters       map[string]*entry
	mu             sync.Mutex
	limit          rate.Limit
	burst          int
	expirationTime time.Duration
}

// New creates a limiter allowing rps requests per second with the given burst.
func New(rps float64, burst int, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		limiters:       make(map[string]*entry),
		limit:          rate.Limit(rps),
		burst:          burst,
		expirationTime: expirationTime,
	}
}

func (url *UserRateLimiter) getLimiter(key string) *rate.Limiter {
	url.mu.Lock()
	defer url.mu.Unlock()

	e, ok := url.limiters[key]
	if ok {
		e.timer.Reset(url.expirationTime)
		return e.limiter
	}

	e = &entry{limiter: rate.NewLimiter(url.limit, url.burst)}
	e.timer = time.AfterFunc(url.expirationTime, func() {
		url.mu.Lock()
		delete(url.limiters, key)
		url.mu.Unlock()
	})
	url.limiters[key] = e
	return e.limiter
}

// Allow reports whether a request for key may proceed now.
func (url *UserRateLimiter) Allow(key string) bool {
	return url.getLimiter(key).Allow()
}

// Len returns the number of live keys.
func (url *UserRateLimiter) Len() int {
	url.mu.Lock()
	defer url.mu.Unlock()
	return len(url.limiters)
}

// Stop cancels all expiry timers.
func (url *UserRateLimiter) Stop() {
	url.mu.Lock()
	defer url.mu.Unlock()

	for _, e := range url.limiters {
		e.timer.Stop()
	}
}

// Presets

func OnceInSecond() *UserRateLimiter { return New(1, 1, time.Hour) }
func Rps10() *UserRateLimiter        { return New(10, 10, time.Hour) }
func Rps100() *UserRateLimiter       { return New(100, 100, time.Hour) }
