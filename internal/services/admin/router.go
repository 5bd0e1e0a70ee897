package admin

import (
	"github.com/go-chi/chi/v5"

	"github.com/datingapp/request-fabric/internal/platform/middleware"
)

// NewRouter wires the admin collaborator's endpoints behind the
// admin-token chain variant: the authentication layer additionally
// requires the verified principal to carry IsAdmin.
func NewRouter(h *Handlers, deps middleware.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Chain(middleware.RequireAdmin(deps)...))
	r.Post("/admin/moderation/decide", h.ModerationDecision)
	r.Post("/admin/users/suspend", h.Suspend)
	return r
}
