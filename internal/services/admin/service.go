// Package admin is a thin adaptor edge (SPEC_FULL §6.11): operator
// actions — approving or banning a moderation-queued asset, suspending
// a user — are forwarded to the data collaborator. The admin UI itself
// is out of scope per spec §1 Non-goals; this package is the API
// surface an operator console would call.
package admin

import (
	"context"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/outbound"
)

type ModerationDecision struct {
	AssetID string `json:"asset_id" validate:"required"`
	Approve bool   `json:"approve"`
}

type SuspendRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type Service struct {
	data *outbound.Client
}

func NewService(data *outbound.Client) *Service {
	return &Service{data: data}
}

func (s *Service) DecideModeration(ctx context.Context, decision ModerationDecision) error {
	if decision.AssetID == "" {
		return domainerr.Validation("asset_id is required")
	}
	return s.data.Do(ctx, outbound.Request{
		Method: "POST",
		Path:   "/media/" + decision.AssetID + "/moderation-decision",
		Body:   decision,
	}, nil)
}

func (s *Service) SuspendUser(ctx context.Context, req SuspendRequest) error {
	if req.UserID == "" {
		return domainerr.Validation("user_id is required")
	}
	return s.data.Do(ctx, outbound.Request{
		Method: "POST",
		Path:   "/users/" + req.UserID + "/suspend",
		Body:   req,
	}, nil)
}
