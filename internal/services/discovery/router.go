package discovery

import (
	"github.com/go-chi/chi/v5"

	"github.com/datingapp/request-fabric/internal/platform/middleware"
)

// NewRouter wires the discovery collaborator's like endpoint behind the
// full nine-layer chain; only authenticated members may record a like.
func NewRouter(h *Handlers, deps middleware.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Chain(middleware.Default(deps)...))
	r.Post("/discovery/like", h.Like)
	return r
}
