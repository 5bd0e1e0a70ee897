package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const (
	// connectTimeout bounds establishing the TCP connection to a
	// downstream service.
	connectTimeout = 10 * time.Second
	// requestTimeout bounds the entire proxied round trip, per spec
	// §4.1's 30s/10s timeout pair. No retry happens at this layer — spec
	// is explicit that retry belongs to the resilience wrapper each
	// service applies to its own outbound calls, not to the gateway hop.
	requestTimeout = 30 * time.Second
)

// hopByHopHeaders are stripped before forwarding, per RFC 7230 §6.1 — the
// teacher's proxy never needed this list since it never proxies, so this
// is grounded on the reverse-proxy pattern in other_examples' gateway
// (Director rewriting Host/Scheme) generalized with the standard
// hop-by-hop set.
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// NewProxy builds a reverse proxy to targetBaseURL that points the request
// at the target's scheme and host (the router has already rewritten the
// path), drops hop-by-hop headers, and originates X-Correlation-ID when
// the client didn't send one.
func NewProxy(serviceName, targetBaseURL string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(targetBaseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid target URL for %s: %w", serviceName, err)
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
	}

	proxy := &httputil.ReverseProxy{
		Transport: transport,
		Director: func(req *http.Request) {
			req.URL.Scheme = target.Scheme
			req.URL.Host = target.Host
			req.Host = target.Host

			for _, h := range hopByHopHeaders {
				req.Header.Del(h)
			}
			if req.Header.Get("X-Correlation-ID") == "" {
				req.Header.Set("X-Correlation-ID", uuid.NewString())
			}
		},
		// ErrorHandler fires when the downstream transport itself fails
		// (connection refused, timeout, DNS) — distinct from a downstream
		// service returning its own error response, which passes through
		// untouched. Spec §4.1 is explicit this is a 503 with a flat error
		// string, never retried at the gateway hop.
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":"Service unavailable"}`)
		},
	}
	return proxy, nil
}

// WithRequestTimeout bounds the whole proxied round trip to
// requestTimeout, independent of whatever timeout the downstream service
// applies to its own handlers.
func WithRequestTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
