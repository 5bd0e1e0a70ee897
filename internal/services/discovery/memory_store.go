package discovery

import (
	"context"
	"sync"
)

// InMemoryLikeStore is a reference LikeStore for tests; the data
// collaborator ships the durable equivalent backed by a Postgres unique
// index on (low_user_id, high_user_id, liker_id).
type InMemoryLikeStore struct {
	mu    sync.Mutex
	likes map[[3]string]bool
}

func NewInMemoryLikeStore() *InMemoryLikeStore {
	return &InMemoryLikeStore{likes: make(map[[3]string]bool)}
}

// RecordLike inserts (lowUserID, highUserID, likerID) if absent. A
// repeat call from the same liker reports inserted=false, matched=false
// — an idempotent replay, not a match. A first-time insert checks
// whether the other party of the pair already has a like recorded; if
// so the insert completes the match.
func (s *InMemoryLikeStore) RecordLike(_ context.Context, lowUserID, highUserID, likerID, _ string) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [3]string{lowUserID, highUserID, likerID}
	if s.likes[key] {
		return false, false, nil
	}

	otherParty := highUserID
	if likerID == highUserID {
		otherParty = lowUserID
	}
	otherKey := [3]string{lowUserID, highUserID, otherParty}
	matched := s.likes[otherKey]

	s.likes[key] = true
	return true, matched, nil
}
