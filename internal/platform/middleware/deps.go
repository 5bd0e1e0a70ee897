package middleware

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

// RateLimiter is satisfied by both platform/ratelimit.TokenBucketLimiter
// and its Redis-backed sibling.
type RateLimiter interface {
	Allow(ctx context.Context, scope, identity string) (allowed bool, retryAfterSeconds int, err error)
}

// Metrics is the narrow surface the middleware chain needs; the concrete
// implementation lives in internal/observability.
type Metrics interface {
	ObserveRequest(method, route string, status int, durationSeconds float64)
}

// AuditSink receives one record per authenticated mutating request.
type AuditSink interface {
	Record(ctx context.Context, principal ctxutil.Principal, method, path string, status int)
}

// Authenticator validates the bearer credential on an inbound request.
type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (ctxutil.Principal, error)
}

// Deps bundles every collaborator the shared chain needs, grounded on the
// teacher's dependency-injection-by-struct convention in cmd/server/main.go.
type Deps struct {
	Logger        *zap.Logger
	Tracer        trace.Tracer
	RateLimiter   RateLimiter
	Metrics       Metrics
	AuditSink     AuditSink
	Authenticator Authenticator
}
