// Package middleware implements the fabric's shared request pipeline:
// error handler, tracing, correlation, user context, request logging,
// rate limiting, metrics, audit logging, authentication — linked into
// every service binary in that order, mirroring the teacher's
// internal/interface/http/middleware package generalized to the fabric's
// nine-layer chain.
package middleware

import "net/http"

// Middleware is the standard net/http decorator signature.
type Middleware func(http.Handler) http.Handler

// Chain composes middlewares so that mws[0] is outermost (runs first on
// the way in, last on the way out) — the same convention the teacher's
// router.go uses when building its stack.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		h := final
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}

// Default returns the nine-layer chain in the normative order. The auth
// service (which has no principal to authenticate against itself) and the
// admin service (which requires an admin principal) use WithoutAuth and
// RequireAdmin instead, which drop or swap the last layer.
func Default(deps Deps) []Middleware {
	return []Middleware{
		ErrorHandler(deps.Logger),
		Tracing(deps.Tracer),
		Correlation(),
		UserContext(),
		RequestLogging(deps.Logger),
		RateLimit(deps.RateLimiter),
		MetricsMiddleware(deps.Metrics),
		AuditLog(deps.AuditSink),
		Authentication(deps.Authenticator),
	}
}

// WithoutAuth is the auth collaborator's own variant: every other layer
// runs, but the final authentication gate is omitted since /auth/* issues
// and validates the very tokens that gate would check.
func WithoutAuth(deps Deps) []Middleware {
	full := Default(deps)
	return full[:len(full)-1]
}

// RequireAdmin is the admin service's variant: the same chain, but the
// authentication layer also demands an admin principal.
func RequireAdmin(deps Deps) []Middleware {
	full := Default(deps)
	full[len(full)-1] = AuthenticationAdmin(deps.Authenticator)
	return full
}
