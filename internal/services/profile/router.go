package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/datingapp/request-fabric/internal/platform/middleware"
)

func NewRouter(h *Handlers, deps middleware.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Chain(middleware.Default(deps)...))
	r.Get("/profile/{userID}", h.Get)
	r.Put("/profile/{userID}", h.Update)
	return r
}
