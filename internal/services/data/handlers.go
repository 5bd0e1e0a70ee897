package data

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

// Handlers exposes the reference data collaborator's REST surface. This
// is an internal-only API the gateway never routes to directly (spec
// §4.1) — only other fabric services call it, through
// platform/outbound.Client.
type Handlers struct {
	repo *Repository
}

func NewHandlers(repo *Repository) *Handlers {
	return &Handlers{repo: repo}
}

type recordLikeRequest struct {
	LowUserID      string `json:"low_user_id"`
	HighUserID     string `json:"high_user_id"`
	LikerID        string `json:"liker_id"`
	IdempotencyKey string `json:"idempotency_key"`
}

type recordLikeResponse struct {
	Inserted bool `json:"inserted"`
	Matched  bool `json:"matched"`
}

func (h *Handlers) RecordLike(w http.ResponseWriter, r *http.Request) {
	var req recordLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return
	}
	inserted, matched, err := h.repo.RecordLike(r.Context(), req.LowUserID, req.HighUserID, req.LikerID, req.IdempotencyKey)
	if err != nil {
		response.Error(w, r, domainerr.Internal("record like", err))
		return
	}
	response.JSON(w, r, http.StatusOK, recordLikeResponse{Inserted: inserted, Matched: matched})
}

type insertMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	ContentType    string `json:"content_type"`
	IdempotencyKey string `json:"idempotency_key"`
}

func (h *Handlers) InsertMessage(w http.ResponseWriter, r *http.Request) {
	var req insertMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return
	}
	msg, inserted, err := h.repo.InsertMessage(r.Context(), req.ConversationID, req.SenderID, req.Body, req.ContentType, req.IdempotencyKey)
	if err != nil {
		response.Error(w, r, domainerr.Internal("insert message", err))
		return
	}
	response.JSON(w, r, http.StatusOK, struct {
		Message
		Inserted bool `json:"inserted"`
	}{Message: msg, Inserted: inserted})
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	p, err := h.repo.GetProfile(r.Context(), userID)
	if errors.Is(err, pgx.ErrNoRows) {
		response.Error(w, r, domainerr.New(domainerr.CodeBusinessRule, "profile not found"))
		return
	}
	if err != nil {
		response.Error(w, r, domainerr.Internal("get profile", err))
		return
	}
	response.JSON(w, r, http.StatusOK, p)
}

func (h *Handlers) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var p Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return
	}
	p.UserID = chi.URLParam(r, "userID")
	updated, err := h.repo.UpsertProfile(r.Context(), p)
	if err != nil {
		response.Error(w, r, domainerr.Internal("upsert profile", err))
		return
	}
	response.JSON(w, r, http.StatusOK, updated)
}

func (h *Handlers) InsertMediaAsset(w http.ResponseWriter, r *http.Request) {
	var a MediaAsset
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return
	}
	asset, err := h.repo.InsertMediaAsset(r.Context(), a)
	if err != nil {
		response.Error(w, r, domainerr.Internal("insert media asset", err))
		return
	}
	response.JSON(w, r, http.StatusOK, asset)
}

func (h *Handlers) DecideModeration(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")
	var req struct {
		Approve bool `json:"approve"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return
	}
	if err := h.repo.DecideModeration(r.Context(), assetID, req.Approve); err != nil {
		response.Error(w, r, domainerr.Internal("decide moderation", err))
		return
	}
	response.JSON(w, r, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{true})
}

func (h *Handlers) SuspendUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, domainerr.Validation("malformed request body"))
		return
	}
	if err := h.repo.SuspendUser(r.Context(), userID, req.Reason); err != nil {
		response.Error(w, r, domainerr.Internal("suspend user", err))
		return
	}
	response.JSON(w, r, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{true})
}
