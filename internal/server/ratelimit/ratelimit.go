// Package ratelimit limits requests per client and route with token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the bucket a request was charged to.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter keeps one token bucket per client and route.
type Limiter struct {
	config  *Config
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a limiter. A nil config uses DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanup(config.CleanupInterval)
	}
	return l
}

// Allow charges one request from clientID to the route's bucket.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	key := clientID + ":default"
	if endpoint == nil {
		endpoint = &l.config.Default
	} else {
		key = clientID + ":" + method + ":" + endpoint.Path
	}
	if endpoint.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	lim := l.bucket(key, *endpoint, now)

	info := Info{Limit: endpoint.Limit}
	if lim.AllowN(now, 1) {
		info.Allowed = true
	} else {
		r := lim.ReserveN(now, 1)
		info.RetryAfter = r.DelayFrom(now)
		r.CancelAt(now)
	}

	tokens := lim.TokensAt(now)
	info.Remaining = max(int(tokens), 0)
	info.ResetTime = now
	if missing := float64(lim.Burst()) - tokens; missing > 0 && lim.Limit() > 0 {
		info.ResetTime = now.Add(time.Duration(missing / float64(lim.Limit()) * float64(time.Second)))
	}
	return info.Allowed, info
}

func (l *Limiter) bucket(key string, endpoint EndpointConfig, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(endpoint.rate(), endpoint.burst())}
		l.buckets[key] = b
	}
	b.lastAccess = now
	return b.limiter
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(time.Now().Add(-l.config.IdleTimeout))
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets not used since cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the cleanup goroutine.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
