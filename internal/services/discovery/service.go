// Package discovery implements the fabric-facing half of the discovery
// edge (spec §4.8): the like/match write path's race-safe idempotency
// obligation. Scoring and candidate-selection business logic live
// outside this module's scope (spec §1 Non-goals).
package discovery

import (
	"context"
	"encoding/json"
	"time"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/eventbus"
)

// LikeStore is the narrow persistence contract the data collaborator
// exposes for this write path: a unique constraint on (low_user_id,
// high_user_id, liker_id) makes the same actor re-liking the same
// target observable as inserted=false rather than a second row; a new
// row additionally reports whether the other party of the pair had
// already liked first, meaning this insert completes a match.
type LikeStore interface {
	RecordLike(ctx context.Context, lowUserID, highUserID, likerID, idempotencyKey string) (inserted bool, matched bool, err error)
}

type Service struct {
	store LikeStore
	bus   eventbus.Publisher
}

func NewService(store LikeStore, bus eventbus.Publisher) *Service {
	return &Service{store: store, bus: bus}
}

type LikeResult struct {
	Matched       bool
	AlreadyExists bool
}

// Like records actorID liking targetID. The pair is normalized to
// (low, high) lexical order before it ever reaches storage so that A
// liking B and B liking A collide on the same unique key regardless of
// call order — the race spec §4.8 calls out explicitly. A repeat like by
// the same actor on the same target is reported as AlreadyExists rather
// than an error, whatever idempotency key it carries (the key is only
// forwarded to storage), and match.created is published exactly once: only on the
// insert that completes the reciprocal pair.
func (s *Service) Like(ctx context.Context, actorID, targetID, idempotencyKey string) (LikeResult, error) {
	if actorID == "" || targetID == "" {
		return LikeResult{}, domainerr.Validation("actor and target are required")
	}
	if actorID == targetID {
		return LikeResult{}, domainerr.BusinessRule("cannot like yourself")
	}

	low, high := actorID, targetID
	if low > high {
		low, high = high, low
	}

	inserted, matched, err := s.store.RecordLike(ctx, low, high, actorID, idempotencyKey)
	if err != nil {
		return LikeResult{}, domainerr.External("record like", err)
	}
	if !inserted {
		return LikeResult{AlreadyExists: true}, nil
	}

	if matched {
		payload, err := matchPayload(low, high)
		if err != nil {
			return LikeResult{}, domainerr.External("encode match.created", err)
		}
		event := eventbus.NewEvent(eventbus.RoutingKeyMatchCreated, ctxutil.CorrelationIDFromContext(ctx), payload)
		if err := s.bus.Publish(ctx, event); err != nil {
			return LikeResult{}, domainerr.External("publish match.created", err)
		}
	}

	return LikeResult{Matched: matched}, nil
}

// matchCreatedPayload is the wire shape of the match.created event, per
// spec §4.6: userID1/userID2 are the lexically-ordered pair so property
// 9(b)'s min(A,B)/max(A,B) holds regardless of which side liked first.
type matchCreatedPayload struct {
	UserID1         string    `json:"user_id_1"`
	UserID2         string    `json:"user_id_2"`
	MatchedAt       time.Time `json:"matched_at"`
	InteractionType string    `json:"interaction_type"`
}

func matchPayload(lowUserID, highUserID string) ([]byte, error) {
	return json.Marshal(matchCreatedPayload{
		UserID1:         lowUserID,
		UserID2:         highUserID,
		MatchedAt:       time.Now(),
		InteractionType: "mutual_like",
	})
}
