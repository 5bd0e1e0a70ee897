// Package ratelimit implements the endpoint and service tiers of spec
// §4.5, grounded on the teacher's internal/interface/http/middleware/ratelimit.go
// token-bucket implementation, generalized to scope buckets by
// (path-scope, identity) pairs instead of a single flat key so the
// endpoint tier and the service tier can share one limiter type.
package ratelimit

import (
	"context"
	"math"
	"regexp"
	"sync"
	"time"
)

// TokenBucket is a single bucket: tokens refill continuously at rate per
// second up to capacity, and Allow consumes one token per call.
type TokenBucket struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func NewTokenBucket(tokensPerSecond, capacity float64) *TokenBucket {
	return &TokenBucket{rate: tokensPerSecond, capacity: capacity, tokens: capacity, lastRefill: time.Now()}
}

func (b *TokenBucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.rate)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (b *TokenBucket) RetryAfter() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	current := math.Min(b.capacity, b.tokens+elapsed*b.rate)
	if current >= 1 {
		return 0
	}
	return int(math.Ceil((1.0 - current) / b.rate))
}

// Rule binds a path pattern to a specific rate, overriding the limiter's
// default service-tier rate — spec's endpoint tier.
type Rule struct {
	Pattern *regexp.Regexp
	Limit   int
	Period  time.Duration
}

type bucketEntry struct {
	bucket     *TokenBucket
	lastAccess time.Time
}

// TokenBucketLimiter implements middleware.RateLimiter with a default
// service-tier rate and an ordered list of endpoint-tier overrides.
type TokenBucketLimiter struct {
	buckets     sync.Map // map[string]*bucketEntry
	defaultRate Rate
	rules       []Rule
	ttl         time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

type Rate struct {
	Limit  int
	Period time.Duration
}

func NewTokenBucketLimiter(defaultRate Rate, rules []Rule) *TokenBucketLimiter {
	l := &TokenBucketLimiter{
		defaultRate: defaultRate,
		rules:       rules,
		ttl:         10 * time.Minute,
		stop:        make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow implements middleware.RateLimiter: scope is typically the request
// path (for endpoint-tier matching), identity the caller (user id or IP).
func (l *TokenBucketLimiter) Allow(_ context.Context, scope, identity string) (bool, int, error) {
	rate := l.rateFor(scope)
	key := scope + "|" + identity
	entry := l.getOrCreate(key, rate)
	if entry.bucket.Allow() {
		return true, 0, nil
	}
	return false, entry.bucket.RetryAfter(), nil
}

func (l *TokenBucketLimiter) rateFor(scope string) Rate {
	for _, rule := range l.rules {
		if rule.Pattern.MatchString(scope) {
			return Rate{Limit: rule.Limit, Period: rule.Period}
		}
	}
	return l.defaultRate
}

func (l *TokenBucketLimiter) getOrCreate(key string, rate Rate) *bucketEntry {
	if v, ok := l.buckets.Load(key); ok {
		e := v.(*bucketEntry)
		e.lastAccess = time.Now()
		return e
	}
	tokensPerSecond := float64(rate.Limit) / rate.Period.Seconds()
	entry := &bucketEntry{bucket: NewTokenBucket(tokensPerSecond, float64(rate.Limit)), lastAccess: time.Now()}
	actual, _ := l.buckets.LoadOrStore(key, entry)
	return actual.(*bucketEntry)
}

func (l *TokenBucketLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			l.buckets.Range(func(k, v interface{}) bool {
				if now.Sub(v.(*bucketEntry).lastAccess) > l.ttl {
					l.buckets.Delete(k)
				}
				return true
			})
		case <-l.stop:
			return
		}
	}
}

func (l *TokenBucketLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
