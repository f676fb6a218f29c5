// Package ratelimit limits requests per client with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket refills at rate tokens per second up to capacity.
type bucket struct {
	capacity float64
	rate     float64
	tokens   float64
	last     time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{capacity: float64(capacity), rate: rate, tokens: float64(capacity), last: now}
}

func (b *bucket) refill(now time.Time) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.last).Seconds()*b.rate)
	b.last = now
}

// take consumes one token if available.
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// resetAt is when the bucket will be full again.
func (b *bucket) resetAt(now time.Time) time.Time {
	missing := b.capacity - b.tokens
	if missing <= 0 || b.rate <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / b.rate * float64(time.Second)))
}

// Info describes the limit applied to a request. Limit is zero when the
// request was not limited.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter tracks one bucket per client, method and path.
type Limiter struct {
	config  *Config
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
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
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow consumes a token for the client's request and reports whether it
// may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	cfg := l.config
	if !cfg.Enabled || cfg.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if cfg.Blacklist[clientID] {
		return false, Info{}
	}
	if path == "/health" {
		return true, Info{Allowed: true}
	}

	limit := EndpointConfig{Limit: cfg.DefaultLimit, Window: cfg.DefaultWindow}
	if e := Match(path, method, cfg.Endpoints); e != nil {
		limit = *e
	}
	if limit.Limit <= 0 || limit.Window <= 0 {
		return true, Info{Allowed: true}
	}
	burst := limit.Burst
	if burst <= 0 {
		burst = limit.Limit
	}

	now := l.now()
	key := clientID + " " + method + " " + path

	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(burst, float64(limit.Limit)/limit.Window.Seconds(), now)
		l.buckets[key] = b
	}
	allowed := b.take(now)

	info := Info{
		Allowed:   allowed,
		Limit:     limit.Limit,
		Remaining: int(b.tokens),
		ResetTime: b.resetAt(now),
	}
	if !allowed {
		info.RetryAfter = time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
	}
	return allowed, info
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup drops buckets idle for longer than IdleTTL.
func (l *Limiter) cleanup() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.last.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
