package main

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// keyedLimiter keeps a token bucket per client.
type keyedLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// newKeyedLimiter allows perSecond events per second per key with an equal burst. Zero or less disables limiting.
func newKeyedLimiter(perSecond int) *keyedLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &keyedLimiter{
		mu:       sync.Mutex{},
		limit:    limit,
		burst:    max(perSecond, 1),
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *keyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
