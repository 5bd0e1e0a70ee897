package middleware

import (
	"net/http"
	"strconv"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

// RateLimit enforces the endpoint and service tiers described in spec
// §4.5. The caller supplies a RateLimiter pre-scoped to this service's
// default rate; endpoint-specific overrides are applied by the limiter
// implementation based on r.URL.Path. A nil limiter disables the layer.
func RateLimit(limiter RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}
			identity := identityFor(r)
			allowed, retryAfter, err := limiter.Allow(r.Context(), r.URL.Path, identity)
			if err != nil {
				// Fail open: an unavailable limiter must never block traffic.
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				response.Error(w, r, domainerr.RateLimitedWithRetryAfter("rate limit exceeded", retryAfter))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identityFor(r *http.Request) string {
	if p, ok := ctxutil.PrincipalFromContext(r.Context()); ok && p.UserID != "" && p.UserID != "anonymous" {
		return p.UserID
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
