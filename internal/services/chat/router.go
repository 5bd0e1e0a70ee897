package chat

import (
	"github.com/go-chi/chi/v5"

	"github.com/datingapp/request-fabric/internal/platform/middleware"
)

// NewRouter wires the chat collaborator's message-send and WebSocket
// endpoints behind the full nine-layer chain.
func NewRouter(h *Handlers, deps middleware.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Chain(middleware.Default(deps)...))
	r.Post("/chat/conversations/{id}/messages", h.SendMessage)
	r.Get("/chat/conversations/{id}/ws", h.Connect)
	return r
}
