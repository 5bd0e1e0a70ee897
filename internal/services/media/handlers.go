package media

import (
	"io"
	"net/http"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

const maxUploadBytes = 10 << 20 // 10MiB

type Handlers struct {
	svc *Service
}

func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

// Upload handles POST /media/upload, a raw-body upload gated entirely by
// the shared authentication layer — there is no form-multipart parsing
// here, matching the edge's thin-adaptor scope.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	principal, ok := ctxutil.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, r, domainerr.Unauthenticated("missing principal"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		response.Error(w, r, domainerr.Validation("could not read request body"))
		return
	}
	if len(data) > maxUploadBytes {
		response.Error(w, r, domainerr.Validation("upload exceeds size limit"))
		return
	}

	contentType := r.Header.Get("Content-Type")
	asset, err := h.svc.Upload(r.Context(), principal.UserID, data, contentType)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, asset)
}
