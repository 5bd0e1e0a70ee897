package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

var validate = validator.New()

type Handlers struct {
	svc *Service
	ws  *WebSocketHandler
}

func NewHandlers(svc *Service, ws *WebSocketHandler) *Handlers {
	return &Handlers{svc: svc, ws: ws}
}

type sendMessageRequest struct {
	Body        string `json:"body" validate:"required"`
	ContentType string `json:"content_type"`
}

type messageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	ContentType    string `json:"content_type"`
}

// SendMessage handles POST /chat/conversations/{id}/messages, forwarding
// the Idempotency-Key header per spec §4.8.
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.Error(w, r, domainerr.Validation(err.Error()))
		return
	}

	principal, ok := ctxutil.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, r, domainerr.Unauthenticated("missing principal"))
		return
	}

	idempotencyKey := r.Header.Get("Idempotency-Key")
	msg, err := h.svc.SendMessage(r.Context(), conversationID, principal.UserID, req.Body, req.ContentType, idempotencyKey)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, messageResponse{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		ContentType:    msg.ContentType,
	})
}

// Connect handles GET /chat/conversations/{id}/ws, the supplementary
// WebSocket echo surface (SPEC_FULL §6.10).
func (h *Handlers) Connect(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	h.ws.Serve(w, r, conversationID)
}
