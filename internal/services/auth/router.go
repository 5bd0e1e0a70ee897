package auth

import (
	"github.com/go-chi/chi/v5"

	"github.com/datingapp/request-fabric/internal/platform/middleware"
)

// NewRouter wires the auth collaborator's three endpoints. /auth/validate
// and /auth/refresh run behind the chain variant that omits the final
// authentication layer (spec §4.2: they issue and validate the very
// tokens that layer would check), but /auth/verify is itself bearer-
// protected — it is the one /auth/* path the gateway's bypass list does
// not exempt (spec §4.2(9)) — so it runs the full default chain.
func NewRouter(h *Handlers, deps middleware.Deps) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Chain(middleware.WithoutAuth(deps)...))
		r.Post("/auth/validate", h.Validate)
		r.Post("/auth/refresh", h.Refresh)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.Chain(middleware.Default(deps)...))
		r.Get("/auth/verify", h.Verify)
	})
	return r
}
