package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
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

// Get handles GET /profile/{userID}.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	p, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}

// Update handles PUT /profile/{userID}.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var p Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return
	}
	p.UserID = chi.URLParam(r, "userID")
	if err := validate.Struct(&p); err != nil {
		response.Error(w, r, domainerr.Validation(err.Error()))
		return
	}

	updated, err := h.svc.Update(r.Context(), p)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, updated)
}
