package discovery

import (
	"context"

	"github.com/datingapp/request-fabric/internal/platform/outbound"
)

// HTTPLikeStore adapts the data collaborator's internal REST surface to
// the LikeStore contract, for production wiring; tests use
// InMemoryLikeStore instead.
type HTTPLikeStore struct {
	data *outbound.Client
}

func NewHTTPLikeStore(data *outbound.Client) *HTTPLikeStore {
	return &HTTPLikeStore{data: data}
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

func (s *HTTPLikeStore) RecordLike(ctx context.Context, lowUserID, highUserID, likerID, idempotencyKey string) (bool, bool, error) {
	var resp recordLikeResponse
	err := s.data.Do(ctx, outbound.Request{
		Method: "POST",
		Path:   "/internal/likes",
		Body: recordLikeRequest{
			LowUserID:      lowUserID,
			HighUserID:     highUserID,
			LikerID:        likerID,
			IdempotencyKey: idempotencyKey,
		},
		IdempotencyKey: idempotencyKey,
	}, &resp)
	if err != nil {
		return false, false, err
	}
	return resp.Inserted, resp.Matched, nil
}
