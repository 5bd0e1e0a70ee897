package middleware

import (
	"net/http"
	"strings"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

// bypassPrefixes lists routes reachable without a bearer credential,
// mirroring the teacher's auth.go bypass-list pattern, generalized to
// spec §4.2(9)'s exact exemptions: health/metrics probes, the auth
// collaborator's own token-issuing endpoints, and admin login. Every
// other /auth/* path — just /auth/verify today — is deliberately left
// out: it is bearer-protected like any other route.
var bypassPrefixes = []string{"/health", "/metrics", "/sync-metrics", "/auth/validate", "/auth/refresh", "/admin/login"}

func isBypassed(path string) bool {
	for _, p := range bypassPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Authentication is the final layer of the chain: it extracts the bearer
// token, delegates verification to the Authenticator (the auth
// collaborator's JWT validator), and replaces the anonymous principal
// UserContext seeded with the verified one.
func Authentication(auth Authenticator) Middleware {
	return authMiddleware(auth, false)
}

// AuthenticationAdmin is the admin service's variant: the verified
// principal must also carry IsAdmin.
func AuthenticationAdmin(auth Authenticator) Middleware {
	return authMiddleware(auth, true)
}

func authMiddleware(auth Authenticator, requireAdmin bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isBypassed(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if auth == nil {
				response.Error(w, r, domainerr.Internal("authenticator not configured", nil))
				return
			}
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if header == "" || !ok || token == "" {
				response.Error(w, r, domainerr.Unauthenticated("missing bearer token"))
				return
			}
			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				response.Error(w, r, err)
				return
			}
			if requireAdmin && !principal.IsAdmin {
				response.Error(w, r, domainerr.Forbidden("admin principal required"))
				return
			}
			ctx := ctxutil.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
