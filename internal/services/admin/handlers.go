package admin

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

// ModerationDecision handles POST /admin/moderation/decide.
func (h *Handlers) ModerationDecision(w http.ResponseWriter, r *http.Request) {
	var req ModerationDecision
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.DecideModeration(r.Context(), req); err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{true})
}

// Suspend handles POST /admin/users/suspend.
func (h *Handlers) Suspend(w http.ResponseWriter, r *http.Request) {
	var req SuspendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.SuspendUser(r.Context(), req); err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{true})
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		response.Error(w, r, domainerr.Validation(err.Error()))
		return false
	}
	return true
}
