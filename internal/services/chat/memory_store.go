package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryMessageStore is a reference MessageStore for tests; the data
// collaborator ships the durable equivalent backed by a Postgres unique
// index on (conversation_id, idempotency_key).
type InMemoryMessageStore struct {
	mu    sync.Mutex
	byKey map[string]Message
}

func NewInMemoryMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{byKey: make(map[string]Message)}
}

func (s *InMemoryMessageStore) InsertMessage(_ context.Context, conversationID, senderID, body, contentType, idempotencyKey string) (Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := conversationID + "|" + idempotencyKey
	if existing, ok := s.byKey[key]; ok {
		return existing, false, nil
	}

	msg := Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		ContentType:    contentType,
		SentAt:         time.Now(),
	}
	s.byKey[key] = msg
	return msg, true, nil
}
