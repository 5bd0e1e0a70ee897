// Package chat implements the fabric-facing half of the chat edge (spec
// §4.8): the idempotent message-send write path, plus a supplementary
// WebSocket echo surface (SPEC_FULL §6.10) grounded on
// original_source/services/chat/main.py. Conversation membership and
// delivery fan-out are out of scope (spec §1 Non-goals).
package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/eventbus"
)

// DefaultContentType is used when a send request doesn't specify one.
const DefaultContentType = "text"

// Message is the persisted representation returned to callers, whether
// this call created it or a prior call with the same idempotency key
// already did.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Body           string
	ContentType    string
	SentAt         time.Time
}

// MessageStore is the narrow persistence contract the data collaborator
// exposes: a unique constraint on (conversation_id, idempotency_key)
// makes a retried send observable as inserted=false, returning the
// message the first call created instead of writing a duplicate.
type MessageStore interface {
	InsertMessage(ctx context.Context, conversationID, senderID, body, contentType, idempotencyKey string) (msg Message, inserted bool, err error)
}

type Service struct {
	store MessageStore
	bus   eventbus.Publisher
}

func NewService(store MessageStore, bus eventbus.Publisher) *Service {
	return &Service{store: store, bus: bus}
}

// SendMessage handles POST /chat/conversations/{id}/messages. A repeat
// call with the same idempotency key returns the original message
// without publishing message.sent a second time.
func (s *Service) SendMessage(ctx context.Context, conversationID, senderID, body, contentType, idempotencyKey string) (Message, error) {
	if conversationID == "" || senderID == "" || body == "" {
		return Message{}, domainerr.Validation("conversation, sender, and body are required")
	}
	if contentType == "" {
		contentType = DefaultContentType
	}
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	msg, inserted, err := s.store.InsertMessage(ctx, conversationID, senderID, body, contentType, idempotencyKey)
	if err != nil {
		return Message{}, domainerr.External("insert message", err)
	}
	if !inserted {
		return msg, nil
	}

	payload, err := messagePayload(msg)
	if err != nil {
		return Message{}, domainerr.External("encode message.sent", err)
	}
	event := eventbus.NewEvent(eventbus.RoutingKeyMessageSent, ctxutil.CorrelationIDFromContext(ctx), payload)
	if err := s.bus.Publish(ctx, event); err != nil {
		return Message{}, domainerr.External("publish message.sent", err)
	}
	return msg, nil
}

// messageSentPayload is the wire shape of the message.sent event, per
// spec §4.6.
type messageSentPayload struct {
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	ContentType    string    `json:"content_type"`
	MessageID      string    `json:"message_id"`
	SentAt         time.Time `json:"sent_at"`
}

func messagePayload(msg Message) ([]byte, error) {
	return json.Marshal(messageSentPayload{
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Body,
		ContentType:    msg.ContentType,
		MessageID:      msg.ID,
		SentAt:         msg.SentAt,
	})
}
