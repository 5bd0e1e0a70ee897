package auth

import (
	"encoding/json"
	"net/http"
	"strconv"

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

type validateRequest struct {
	InitData string `json:"init_data" validate:"required"`
}

// tokenResponseExpiresIn is the fixed token lifetime advertised on the
// wire per spec §4.3; it mirrors the TokenService default TTL of one
// hour rather than whatever TokenTTL a deployment configures.
const tokenResponseExpiresIn = 3600

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	ExpiresIn    int64  `json:"expires_in"`
}

func newTokenResponse(pair TokenPair) tokenResponse {
	userID, _ := strconv.ParseInt(pair.UserID, 10, 64)
	return tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       userID,
		Username:     pair.Username,
		ExpiresIn:    tokenResponseExpiresIn,
	}
}

// Validate handles POST /auth/validate.
func (h *Handlers) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	pair, err := h.svc.Validate(r.Context(), req.InitData)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, newTokenResponse(pair))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh handles POST /auth/refresh.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, newTokenResponse(pair))
}

type verifyResponse struct {
	Valid  bool     `json:"valid"`
	UserID string   `json:"user_id,omitempty"`
	Roles  []string `json:"roles,omitempty"`
}

// Verify handles GET /auth/verify, a bearer-protected echo confirming
// token validity (spec §4.3). The authentication middleware has already
// rejected a missing/invalid Authorization header with 401 AUTH_001
// before this handler runs; reaching here means the caller's principal
// is already known good.
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	principal, ok := ctxutil.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, r, domainerr.Unauthenticated("missing principal"))
		return
	}
	response.JSON(w, r, http.StatusOK, verifyResponse{Valid: true, UserID: principal.UserID, Roles: principal.Roles})
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
