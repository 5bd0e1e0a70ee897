package discovery

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

var validate = validator.New()

type Handlers struct {
	svc *Service
}

func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

type likeRequest struct {
	TargetUserID string `json:"target_user_id" validate:"required"`
}

type likeResponse struct {
	Matched       bool `json:"matched"`
	AlreadyExists bool `json:"already_exists"`
}

// Like handles POST /discovery/like. The caller's identity comes from
// the authenticated principal, never the request body, so a forged
// target_user_id cannot be used to like on another user's behalf.
func (h *Handlers) Like(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
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
	result, err := h.svc.Like(r.Context(), principal.UserID, req.TargetUserID, idempotencyKey)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, likeResponse{Matched: result.Matched, AlreadyExists: result.AlreadyExists})
}
