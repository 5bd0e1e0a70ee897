package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// luaRateLimitScript performs an atomic INCR+EXPIRE fixed-window check,
// grounded on the teacher's internal/infra/redis/ratelimiter.go.
const luaRateLimitScript = `
local current = redis.call('INCR', KEYS[1])
if current == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[2])
end
if current > tonumber(ARGV[1]) then
    return 0
end
return 1
`

// circuitBreaker is a minimal local failure counter protecting against a
// thundering herd of calls onto a down Redis — not the general-purpose
// platform/resilience.CircuitBreaker, which trips on downstream service
// calls rather than on the rate limiter's own storage backend.
type circuitBreaker struct {
	failures     int
	threshold    int
	lastFailure  time.Time
	recoveryTime time.Duration
	mu           sync.Mutex
}

func (cb *circuitBreaker) isOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.failures >= cb.threshold {
		if time.Since(cb.lastFailure) > cb.recoveryTime {
			cb.failures = 0
			return false
		}
		return true
	}
	return false
}

func (cb *circuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures++
	cb.lastFailure = time.Now()
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
}

// RedisLimiter is the distributed variant bootstrap.buildRateLimiter
// selects for any service whose configuration enables Redis, so that
// scaling that service horizontally does not multiply the effective
// limit.
type RedisLimiter struct {
	client      *redis.Client
	defaultRate Rate
	rules       []Rule
	keyPrefix   string
	timeout     time.Duration

	fallback *TokenBucketLimiter
	circuit  *circuitBreaker

	scriptSHA string
	scriptMu  sync.Mutex
}

func NewRedisLimiter(client *redis.Client, defaultRate Rate, rules []Rule, fallback *TokenBucketLimiter) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		defaultRate: defaultRate,
		rules:       rules,
		keyPrefix:   "rl:",
		timeout:     100 * time.Millisecond,
		fallback:    fallback,
		circuit:     &circuitBreaker{threshold: 5, recoveryTime: 30 * time.Second},
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, scope, identity string) (bool, int, error) {
	if r.circuit.isOpen() {
		return r.allowFallback(ctx, scope, identity)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rate := r.rateFor(scope)
	key := r.keyPrefix + scope + ":" + identity

	sha, err := r.ensureScript(ctx)
	if err != nil {
		r.circuit.recordFailure()
		return r.allowFallback(ctx, scope, identity)
	}

	result, err := r.client.EvalSha(ctx, sha, []string{key}, rate.Limit, int(rate.Period.Seconds())).Int()
	if err != nil && isNoScriptError(err) {
		r.scriptMu.Lock()
		r.scriptSHA = ""
		r.scriptMu.Unlock()
		result, err = r.client.Eval(ctx, luaRateLimitScript, []string{key}, rate.Limit, int(rate.Period.Seconds())).Int()
	}
	if err != nil {
		r.circuit.recordFailure()
		return r.allowFallback(ctx, scope, identity)
	}

	r.circuit.recordSuccess()
	if result == 1 {
		return true, 0, nil
	}
	ttl, _ := r.client.TTL(ctx, key).Result()
	retryAfter := 1
	if ttl > 0 {
		retryAfter = int(ttl.Seconds())
	}
	return false, retryAfter, nil
}

func (r *RedisLimiter) allowFallback(ctx context.Context, scope, identity string) (bool, int, error) {
	if r.fallback != nil {
		return r.fallback.Allow(ctx, scope, identity)
	}
	return true, 0, nil // fail open with no fallback configured
}

func (r *RedisLimiter) rateFor(scope string) Rate {
	for _, rule := range r.rules {
		if rule.Pattern.MatchString(scope) {
			return Rate{Limit: rule.Limit, Period: rule.Period}
		}
	}
	return r.defaultRate
}

func (r *RedisLimiter) ensureScript(ctx context.Context) (string, error) {
	r.scriptMu.Lock()
	defer r.scriptMu.Unlock()
	if r.scriptSHA != "" {
		return r.scriptSHA, nil
	}
	sha, err := r.client.ScriptLoad(ctx, luaRateLimitScript).Result()
	if err != nil {
		return "", err
	}
	r.scriptSHA = sha
	return sha, nil
}

func isNoScriptError(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "NOSCRIPT")
}
