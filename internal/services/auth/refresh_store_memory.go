package auth

import (
	"context"
	"sync"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

// InMemoryRefreshStore is a reference RefreshStore; the data collaborator
// ships the durable equivalent backed by Postgres.
type InMemoryRefreshStore struct {
	mu    sync.Mutex
	store map[string]ctxutil.Principal
}

func NewInMemoryRefreshStore() *InMemoryRefreshStore {
	return &InMemoryRefreshStore{store: make(map[string]ctxutil.Principal)}
}

func (s *InMemoryRefreshStore) Store(_ context.Context, refreshToken string, principal ctxutil.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[refreshToken] = principal
	return nil
}

// Consume deletes the token on read so a refresh token can only be
// redeemed once, matching the rotation contract /auth/refresh promises.
func (s *InMemoryRefreshStore) Consume(_ context.Context, refreshToken string) (ctxutil.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	principal, ok := s.store[refreshToken]
	if !ok {
		return ctxutil.Principal{}, domainerr.InvalidToken("unknown refresh token")
	}
	delete(s.store, refreshToken)
	return principal, nil
}
