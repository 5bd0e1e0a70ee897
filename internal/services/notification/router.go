package notification

import (
	"github.com/go-chi/chi/v5"

	"github.com/datingapp/request-fabric/internal/platform/middleware"
)

// NewRouter wires the notification collaborator's internal send
// endpoint behind the full nine-layer chain.
func NewRouter(h *Handlers, deps middleware.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Chain(middleware.Default(deps)...))
	r.Post("/notification/send", h.Send)
	return r
}
