package middleware

import (
	"net/http"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

func principalFromRequest(r *http.Request) (ctxutil.Principal, bool) {
	return ctxutil.PrincipalFromContext(r.Context())
}

// UserContext seeds the context with an anonymous Principal so every
// downstream layer (rate limiting, metrics, audit logging) can read a
// principal without a nil check, even on requests that never reach the
// authentication layer (e.g. the bypass list). Authentication, the final
// layer, overwrites this with the real principal once the credential is
// verified.
func UserContext() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxutil.WithPrincipal(r.Context(), ctxutil.Principal{UserID: "anonymous"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
