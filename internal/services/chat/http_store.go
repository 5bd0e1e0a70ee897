package chat

import (
	"context"

	"github.com/datingapp/request-fabric/internal/platform/outbound"
)

// HTTPMessageStore adapts the data collaborator's internal REST surface
// to the MessageStore contract, for production wiring; tests use
// InMemoryMessageStore instead.
type HTTPMessageStore struct {
	data *outbound.Client
}

func NewHTTPMessageStore(data *outbound.Client) *HTTPMessageStore {
	return &HTTPMessageStore{data: data}
}

type insertMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	ContentType    string `json:"content_type"`
	IdempotencyKey string `json:"idempotency_key"`
}

type insertMessageResponse struct {
	Message
	Inserted bool `json:"inserted"`
}

func (s *HTTPMessageStore) InsertMessage(ctx context.Context, conversationID, senderID, body, contentType, idempotencyKey string) (Message, bool, error) {
	var resp insertMessageResponse
	err := s.data.Do(ctx, outbound.Request{
		Method: "POST",
		Path:   "/internal/messages",
		Body: insertMessageRequest{
			ConversationID: conversationID,
			SenderID:       senderID,
			Body:           body,
			ContentType:    contentType,
			IdempotencyKey: idempotencyKey,
		},
		IdempotencyKey: idempotencyKey,
	}, &resp)
	if err != nil {
		return Message{}, false, err
	}
	return resp.Message, resp.Inserted, nil
}
