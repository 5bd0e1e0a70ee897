package notification

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

var validate = validator.New()

type Handlers struct {
	svc *Service
}

func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

type sendRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Kind   string `json:"kind" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

type sendResponse struct {
	Status string `json:"status"`
}

// Send handles POST /notification/send, an internal-only surface the
// gateway does not expose publicly (spec §4.1): other services call it
// directly rather than routing through the event bus when an immediate
// best-effort push is wanted.
func (h *Handlers) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.Error(w, r, domainerr.Validation(err.Error()))
		return
	}

	result, err := h.svc.Notify(r.Context(), req.UserID, req.Kind, req.Body)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	if result.Queued {
		response.JSON(w, r, http.StatusOK, sendResponse{Status: "queued"})
		return
	}
	response.JSON(w, r, http.StatusOK, sendResponse{Status: "sent"})
}
