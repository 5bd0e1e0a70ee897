package data

import (
	"github.com/go-chi/chi/v5"

	"github.com/datingapp/request-fabric/internal/platform/middleware"
)

// NewRouter wires the data collaborator's internal-only REST surface.
// Every route here is reached exclusively via platform/outbound.Client
// from another fabric service — the gateway's route table (SPEC_FULL
// §6.1) never forwards a client request here directly.
func NewRouter(h *Handlers, deps middleware.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Chain(middleware.Default(deps)...))

	r.Post("/internal/likes", h.RecordLike)
	r.Post("/internal/messages", h.InsertMessage)

	r.Get("/profiles/{userID}", h.GetProfile)
	r.Put("/profiles/{userID}", h.UpsertProfile)

	r.Post("/media", h.InsertMediaAsset)
	r.Post("/media/{assetID}/moderation-decision", h.DecideModeration)

	r.Post("/users/{userID}/suspend", h.SuspendUser)

	return r
}
