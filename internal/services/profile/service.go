// Package profile is a thin adaptor edge (SPEC_FULL §6.11): the profile
// read/write surface forwards to the data collaborator through the
// resilient outbound client. Profile content validation and ranking are
// out of scope per spec §1 Non-goals; profile writes are not among
// spec §4.6's enumerated routing keys, so this edge does not publish to
// the event bus.
package profile

import (
	"context"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/outbound"
)

type Profile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name" validate:"required"`
	Bio         string `json:"bio"`
}

type Service struct {
	data *outbound.Client
}

func NewService(data *outbound.Client) *Service {
	return &Service{data: data}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	if err := s.data.Do(ctx, outbound.Request{Method: "GET", Path: "/profiles/" + userID}, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p Profile) (Profile, error) {
	if p.UserID == "" {
		return Profile{}, domainerr.Validation("user_id is required")
	}

	var updated Profile
	if err := s.data.Do(ctx, outbound.Request{Method: "PUT", Path: "/profiles/" + p.UserID, Body: p}, &updated); err != nil {
		return Profile{}, err
	}
	return updated, nil
}
